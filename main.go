package main

import (
	"time"

	"github.com/wfunc/wordclash/config"
	"github.com/wfunc/wordclash/deck"
	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/monitor"
	"github.com/wfunc/wordclash/orchestrator"
	"github.com/wfunc/wordclash/persistence"
	"github.com/wfunc/wordclash/room"
	"github.com/wfunc/wordclash/server"
	"github.com/wfunc/wordclash/timer"
	"github.com/wfunc/wordclash/wordgen"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Card store
	store, err := persistence.NewGormPostgreSQL(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}

	cards, err := store.LoadAllCards()
	if err != nil {
		logger.Log.Fatalf("Failed to load card pool: %v", err)
	}
	logger.Log.Infof("Loaded %d cards from store", len(cards))

	// Word generation service (optional; the pool simply never grows without it)
	var provider deck.Provider
	natsProvider, err := wordgen.Connect(cfg.NATS.URL, cfg.NATS.Subject)
	if err != nil {
		logger.Log.Warnf("Word generation service unavailable: %v", err)
	} else {
		provider = natsProvider
	}

	// Monitoring
	mon := monitor.NewMonitor("wordclash")
	mon.StartServer(cfg.Server.MonitorAddress)

	// Core wiring: timers -> orchestrator -> registry
	timers := timer.NewTimerManager()
	deckMgr := deck.NewManager(cards, provider, store,
		cfg.Game.DeckLowWatermark, cfg.Game.ReplenishBatch, mon)
	orch := orchestrator.New(timers)
	registry := room.NewRegistry(cfg.Game, deckMgr, orch, timers)
	registry.StartSweeper(time.Minute)

	// Periodic gauge refresh
	timers.AddTimer(15*time.Second, 15*time.Second, func() {
		mon.SetActiveRooms(registry.Count())
		mon.SetDeckPoolSize(deckMgr.PoolSize())
	})

	// Game server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, registry, deckMgr, mon)

	logger.Log.Infof("Starting wordclash server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
