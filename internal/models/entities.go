package models

// LearningKind enumerates the supported learning item kinds.
type LearningKind string

const (
	LearningArticle LearningKind = "article"
	LearningVideo   LearningKind = "video"
	LearningCourse  LearningKind = "course"
	LearningBook    LearningKind = "book"
)

// Valid reports whether k is one of the known kinds.
func (k LearningKind) Valid() bool {
	switch k {
	case LearningArticle, LearningVideo, LearningCourse, LearningBook:
		return true
	}
	return false
}

// CodingSession records a block of coding work. Date is a calendar day in
// "2006-01-02" form; Duration is in minutes.
type CodingSession struct {
	Meta
	Date        string   `json:"date"`
	Duration    int      `json:"duration"`
	Project     string   `json:"project"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LearningItem tracks an article, video, course or book on the reading list.
type LearningItem struct {
	Meta
	Title         string       `json:"title"`
	Kind          LearningKind `json:"kind"`
	URL           string       `json:"url,omitempty"`
	Completed     bool         `json:"completed"`
	DateAdded     string       `json:"dateAdded"`
	DateCompleted string       `json:"dateCompleted,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

// FocusSession records a completed (or abandoned) focus timer run.
// Duration is in minutes.
type FocusSession struct {
	Meta
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}
