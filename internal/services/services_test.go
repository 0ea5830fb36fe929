package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSyncer is an in-memory Syncer keeping records per collection.
type fakeSyncer struct {
	records  map[string]map[string]models.Envelope
	writeErr error
	readErr  error
	writes   int
}

func newFakeSyncer() *fakeSyncer {
	return &fakeSyncer{records: make(map[string]map[string]models.Envelope)}
}

func (f *fakeSyncer) Write(ctx context.Context, collection string, env models.Envelope) (models.Envelope, error) {
	if f.writeErr != nil {
		return models.Envelope{}, f.writeErr
	}
	f.writes++
	if f.records[collection] == nil {
		f.records[collection] = make(map[string]models.Envelope)
	}
	f.records[collection][env.ID] = env
	return env, nil
}

func (f *fakeSyncer) ReadAll(ctx context.Context, collection string) ([]models.Envelope, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var result []models.Envelope
	for _, env := range f.records[collection] {
		result = append(result, env)
	}
	return result, nil
}

func (f *fakeSyncer) Delete(ctx context.Context, collection, id string) error {
	delete(f.records[collection], id)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestCodingSessionService_Save_AssignsIdentityAndTimestamps(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewCodingSessionService(syncer).(*codingSessionService)
	svc.now = fixedClock(testNow)

	saved, err := svc.Save(context.Background(), models.CodingSession{
		Date: "2024-03-15", Duration: 90, Project: "devpulse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.True(t, saved.CreatedAt.Equal(testNow))
	assert.True(t, saved.UpdatedAt.Equal(testNow))
	require.Len(t, syncer.records[models.CollectionCodingSessions], 1)
}

func TestCodingSessionService_Save_ExistingIDKeepsCreatedAt(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewCodingSessionService(syncer).(*codingSessionService)
	svc.now = fixedClock(testNow)

	created := testNow.Add(-24 * time.Hour)
	saved, err := svc.Save(context.Background(), models.CodingSession{
		Meta: models.Meta{ID: "id1", CreatedAt: created, UpdatedAt: created},
		Date: "2024-03-14", Duration: 30, Project: "devpulse",
	})
	require.NoError(t, err)

	assert.Equal(t, "id1", saved.ID)
	assert.True(t, saved.CreatedAt.Equal(created))
	assert.True(t, saved.UpdatedAt.Equal(testNow))
}

func TestCodingSessionService_Save_PropagatesWriteErrors(t *testing.T) {
	syncer := newFakeSyncer()
	syncer.writeErr = common.ErrStorage
	svc := NewCodingSessionService(syncer)

	_, err := svc.Save(context.Background(), models.CodingSession{Date: "2024-03-15", Duration: 10, Project: "x"})
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestCodingSessionService_List_DecodesPayloads(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewCodingSessionService(syncer).(*codingSessionService)
	svc.now = fixedClock(testNow)

	_, err := svc.Save(context.Background(), models.CodingSession{Date: "2024-03-15", Duration: 45, Project: "a"})
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), models.CodingSession{Date: "2024-03-14", Duration: 75, Project: "b"})
	require.NoError(t, err)

	sessions, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestTotalHours(t *testing.T) {
	sessions := []models.CodingSession{
		{Duration: 90},
		{Duration: 30},
	}
	assert.InDelta(t, 2.0, TotalHours(sessions), 1e-9)
	assert.Zero(t, TotalHours(nil))
}

func TestRecent_FiltersByCutoff(t *testing.T) {
	sessions := []models.CodingSession{
		{Date: "2024-03-14", Project: "recent"},
		{Date: "2024-03-01", Project: "old"},
		{Date: "not-a-date", Project: "bad"},
	}

	got := Recent(sessions, 7, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "recent", got[0].Project)
}

func TestLearningItemService_Save_RejectsUnknownKind(t *testing.T) {
	svc := NewLearningItemService(newFakeSyncer())
	_, err := svc.Save(context.Background(), models.LearningItem{Title: "x", Kind: "podcast"})
	assert.Error(t, err)
}

func TestLearningItemService_Save_DefaultsDateAdded(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewLearningItemService(syncer).(*learningItemService)
	svc.now = fixedClock(testNow)

	saved, err := svc.Save(context.Background(), models.LearningItem{Title: "Go spec", Kind: models.LearningArticle})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", saved.DateAdded)
}

func TestLearningItemService_ToggleComplete(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewLearningItemService(syncer).(*learningItemService)
	svc.now = fixedClock(testNow)

	saved, err := svc.Save(context.Background(), models.LearningItem{Title: "Go spec", Kind: models.LearningArticle})
	require.NoError(t, err)

	toggled, err := svc.ToggleComplete(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, "2024-03-15", toggled.DateCompleted)

	// flipping back clears the completion date
	toggled, err = svc.ToggleComplete(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Empty(t, toggled.DateCompleted)

	// the toggles were persisted, not just returned
	stored := syncer.records[models.CollectionLearningItems][saved.ID]
	var item models.LearningItem
	require.NoError(t, json.Unmarshal(stored.Payload, &item))
	assert.False(t, item.Completed)
}

func TestLearningItemService_ToggleComplete_UnknownID(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewLearningItemService(syncer)

	_, err := svc.ToggleComplete(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, syncer.writes)
}

func TestLearningCounts(t *testing.T) {
	items := []models.LearningItem{
		{Completed: true},
		{Completed: false},
		{Completed: true},
	}
	assert.Equal(t, 2, CompletedCount(items))
	assert.Equal(t, 1, IncompleteCount(items))
}

func TestByKind(t *testing.T) {
	items := []models.LearningItem{
		{Title: "a", Kind: models.LearningArticle},
		{Title: "b", Kind: models.LearningBook},
		{Title: "c", Kind: models.LearningArticle},
	}
	got := ByKind(items, models.LearningArticle)
	require.Len(t, got, 2)
	assert.Empty(t, ByKind(items, models.LearningVideo))
}

func TestFocusSessionService_Save_RoundTrips(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewFocusSessionService(syncer).(*focusSessionService)
	svc.now = fixedClock(testNow)

	saved, err := svc.Save(context.Background(), models.FocusSession{
		Date: testNow.Format(time.RFC3339), Duration: 25, Task: "review", Completed: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	sessions, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "review", sessions[0].Task)
}

func TestTotalFocusHours(t *testing.T) {
	sessions := []models.FocusSession{{Duration: 25}, {Duration: 35}}
	assert.InDelta(t, 1.0, TotalFocusHours(sessions), 1e-9)
}

func TestDailyAverage(t *testing.T) {
	sessions := []models.FocusSession{
		{Date: testNow.Add(-24 * time.Hour).Format(time.RFC3339), Duration: 60},
		{Date: testNow.Add(-48 * time.Hour).Format(time.RFC3339), Duration: 60},
		{Date: testNow.AddDate(0, 0, -30).Format(time.RFC3339), Duration: 600},
	}

	// two hours inside the 7-day window
	assert.InDelta(t, 2.0/7.0, DailyAverage(sessions, 7, testNow), 1e-9)
	assert.Zero(t, DailyAverage(sessions, 0, testNow))
}

func TestFocusTracker_AccumulatesOnlyWhileActive(t *testing.T) {
	tr := NewFocusTracker(nil)
	tr.now = fixedClock(testNow)

	tr.Tick() // idle, ignored
	tr.Start("deep work")
	tr.Tick()
	tr.Tick()
	tr.Pause()
	tr.Tick() // paused, ignored
	tr.Resume()
	tr.Tick()

	task, elapsed, active := tr.Running()
	assert.Equal(t, "deep work", task)
	assert.Equal(t, 3, elapsed)
	assert.True(t, active)
}

func TestFocusTracker_ResumeWithoutStartIsNoop(t *testing.T) {
	tr := NewFocusTracker(nil)
	tr.Resume()
	tr.Tick()

	_, elapsed, active := tr.Running()
	assert.Zero(t, elapsed)
	assert.False(t, active)
}

func TestFocusTracker_CompletePersistsSession(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewFocusSessionService(syncer).(*focusSessionService)
	svc.now = fixedClock(testNow)

	tr := NewFocusTracker(svc)
	tr.now = fixedClock(testNow)

	tr.Start("deep work")
	for i := 0; i < 150; i++ {
		tr.Tick()
	}

	saved, err := tr.Complete(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "deep work", saved.Task)
	assert.Equal(t, 3, saved.Duration) // 150s rounds to 3 minutes
	assert.True(t, saved.Completed)
	assert.Equal(t, testNow.Format(time.RFC3339), saved.Date)

	// tracker is reset afterwards
	_, elapsed, active := tr.Running()
	assert.Zero(t, elapsed)
	assert.False(t, active)
}

func TestFocusTracker_CompleteDiscardsShortRuns(t *testing.T) {
	syncer := newFakeSyncer()
	svc := NewFocusSessionService(syncer)

	tr := NewFocusTracker(svc)
	tr.now = fixedClock(testNow)

	tr.Start("blip")
	for i := 0; i < 20; i++ {
		tr.Tick()
	}

	saved, err := tr.Complete(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
	assert.Zero(t, syncer.writes)
}

func TestFocusTracker_CompleteWithoutStart(t *testing.T) {
	tr := NewFocusTracker(nil)
	saved, err := tr.Complete(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestFocusTracker_CancelDiscards(t *testing.T) {
	tr := NewFocusTracker(nil)
	tr.now = fixedClock(testNow)

	tr.Start("x")
	tr.Tick()
	tr.Cancel()

	_, elapsed, active := tr.Running()
	assert.Zero(t, elapsed)
	assert.False(t, active)
}

func TestCodingSessionService_List_PropagatesReadErrors(t *testing.T) {
	syncer := newFakeSyncer()
	syncer.readErr = errors.New("disk gone")
	svc := NewCodingSessionService(syncer)

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}
