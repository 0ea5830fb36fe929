package app

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) listSessions(ctx context.Context) {
	sessions, err := a.coding.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No coding sessions yet.")
		return
	}
	for _, s := range sessions {
		line := fmt.Sprintf("%s  %s  %4dm  %s", s.ID, s.Date, s.Duration, s.Project)
		if len(s.Tags) > 0 {
			line += "  [" + strings.Join(s.Tags, ", ") + "]"
		}
		fmt.Println(line)
	}
}

func (a *App) listItems(ctx context.Context) {
	items, err := a.learning.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if len(items) == 0 {
		fmt.Println("No learning items yet.")
		return
	}
	for _, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %-7s  %s\n", mark, item.ID, item.Kind, item.Title)
	}
}

func (a *App) toggleItem(ctx context.Context, id string) {
	item, err := a.learning.ToggleComplete(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if item.Completed {
		fmt.Printf("Completed %q\n", item.Title)
	} else {
		fmt.Printf("Reopened %q\n", item.Title)
	}
}

func (a *App) remove(ctx context.Context, what, id string) {
	var err error
	switch what {
	case "session":
		err = a.coding.DeleteByID(ctx, id)
	case "item":
		err = a.learning.DeleteByID(ctx, id)
	case "focus":
		err = a.focus.DeleteByID(ctx, id)
	default:
		fmt.Println("Usage: rm <session|item|focus> <id>")
		return
	}
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Deleted", id)
}
