package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/services"
)

func (a *App) stats(ctx context.Context) {
	sessions, err := a.coding.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	items, err := a.learning.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	focus, err := a.focus.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	now := time.Now()
	fmt.Printf("Coding:   %.1fh total, %d sessions in the last 7 days\n",
		services.TotalHours(sessions), len(services.Recent(sessions, 7, now)))
	fmt.Printf("Learning: %d done, %d open\n",
		services.CompletedCount(items), services.IncompleteCount(items))
	fmt.Printf("Focus:    %.1fh total, %.1fh/day over the last 7 days\n",
		services.TotalFocusHours(focus), services.DailyAverage(focus, 7, now))
}

func (a *App) syncNow(ctx context.Context) {
	if err := a.engine.DrainQueue(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Sync queue processed.")
}

func (a *App) showStatus(ctx context.Context) {
	pending, err := a.engine.PendingCount(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Mode: %s, pending operations: %d\n", a.status(), pending)
}
