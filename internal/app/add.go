package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/models"
)

func (a *App) addSession(ctx context.Context) {
	date, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD, empty for today):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		fmt.Println("Invalid date:", date)
		return
	}

	duration, err := GetInt(a.reader, "Duration (minutes):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	project, err := GetSimpleText(a.reader, "Project:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	description, err := GetMultiline(a.reader, "Description:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	tagLine, err := GetSimpleText(a.reader, "Tags (comma-separated, optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	var tags []string
	for _, tag := range strings.Split(tagLine, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	saved, err := a.coding.Save(ctx, models.CodingSession{
		Date:        date,
		Duration:    duration,
		Project:     project,
		Description: description,
		Tags:        tags,
	})
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Saved session %s\n", saved.ID)
}

func (a *App) addItem(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	kind, err := GetSimpleText(a.reader, "Kind (article/video/course/book):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	url, err := GetSimpleText(a.reader, "URL (optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	notes, err := GetMultiline(a.reader, "Notes:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	saved, err := a.learning.Save(ctx, models.LearningItem{
		Title: title,
		Kind:  models.LearningKind(kind),
		URL:   url,
		Notes: notes,
	})
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Saved item %s\n", saved.ID)
}
