package app

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) focusCommand(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.focusStatus()
		return
	}

	switch args[0] {
	case "pause":
		a.tracker.Pause()
		fmt.Println("Paused.")
	case "resume":
		a.tracker.Resume()
		fmt.Println("Resumed.")
	case "cancel":
		a.tracker.Cancel()
		fmt.Println("Cancelled.")
	case "done":
		session, err := a.tracker.Complete(ctx)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		if session == nil {
			fmt.Println("Nothing worth saving (less than a minute).")
			return
		}
		fmt.Printf("Saved focus session %s (%dm on %q)\n", session.ID, session.Duration, session.Task)
	default:
		task := strings.Join(args, " ")
		a.tracker.Start(task)
		fmt.Printf("Focusing on %q. Commands: focus pause|resume|done|cancel\n", task)
	}
}

func (a *App) focusStatus() {
	task, elapsed, active := a.tracker.Running()
	if task == "" {
		fmt.Println("No focus session. Start one with: focus <task>")
		return
	}
	state := "paused"
	if active {
		state = "running"
	}
	fmt.Printf("%s: %q, %02d:%02d elapsed\n", state, task, elapsed/60, elapsed%60)
}
