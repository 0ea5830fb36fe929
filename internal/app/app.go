package app

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/config"
	"github.com/dmitrijs2005/devpulse/internal/logging"
	"github.com/dmitrijs2005/devpulse/internal/netx"
	"github.com/dmitrijs2005/devpulse/internal/remote"
	"github.com/dmitrijs2005/devpulse/internal/services"
	"github.com/dmitrijs2005/devpulse/internal/store"
	devsync "github.com/dmitrijs2005/devpulse/internal/sync"
)

// App wires the local store, the optional remote mirror and the entity
// services behind an interactive prompt.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	monitor *devsync.Monitor
	prober  devsync.Prober
	engine  *devsync.Engine

	coding   services.CodingSessionService
	learning services.LearningItemService
	focus    services.FocusSessionService
	tracker  *services.FocusTracker

	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	monitor := devsync.NewMonitor(log)

	var gw remote.Gateway
	var prober devsync.Prober
	if cfg.RemoteDSN != "" {
		rdb, err := remote.Open(cfg.RemoteDSN)
		if err != nil {
			return nil, fmt.Errorf("opening remote mirror: %w", err)
		}
		gw = remote.NewPostgresGateway(rdb)

		addr, err := remote.AddrFromDSN(cfg.RemoteDSN)
		if err != nil {
			return nil, fmt.Errorf("resolving remote address: %w", err)
		}
		prober = &netx.TCPProber{Addr: addr, Timeout: cfg.ProbeTimeout}
	}

	engine := devsync.NewEngine(db, gw, monitor, log)

	focusSvc := services.NewFocusSessionService(engine)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		monitor:  monitor,
		prober:   prober,
		engine:   engine,
		coding:   services.NewCodingSessionService(engine),
		learning: services.NewLearningItemService(engine),
		focus:    focusSvc,
		tracker:  services.NewFocusTracker(focusSvc),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) status() string {
	if a.prober == nil {
		return "local"
	}
	if a.monitor.Online() {
		return "online"
	}
	return "offline"
}

// Run starts the connectivity watcher, the focus ticker and the prompt
// loop. It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.engine.Start(ctx)

	if a.prober != nil {
		go a.monitor.Watch(ctx, a.prober, a.config.OnlineCheckInterval)
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.tracker.Tick()
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Println("Welcome to DevPulse (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("dp (%s)> ", a.status())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: add, sessions, learn, items, toggle, focus, stats, rm, sync, status, exit")

		case "add":
			a.addSession(ctx)
		case "sessions":
			a.listSessions(ctx)
		case "learn":
			a.addItem(ctx)
		case "items":
			a.listItems(ctx)
		case "toggle":
			if len(args) == 0 {
				fmt.Println("Usage: toggle <id>")
				continue
			}
			a.toggleItem(ctx, args[0])
		case "focus":
			a.focusCommand(ctx, args)
		case "stats":
			a.stats(ctx)
		case "rm":
			if len(args) < 2 {
				fmt.Println("Usage: rm <session|item|focus> <id>")
				continue
			}
			a.remove(ctx, args[0], args[1])
		case "sync":
			a.syncNow(ctx)
		case "status":
			a.showStatus(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
