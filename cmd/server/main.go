package main

import (
	"context"
	"log"
	"time"

	httpadapter "hearthverse/internal/adapter/http"
	metricsinmem "hearthverse/internal/adapter/metrics/inmemory"
	gormrepo "hearthverse/internal/adapter/repo/gorm"
	memoryrepo "hearthverse/internal/adapter/repo/memory"
	"hearthverse/internal/adapter/strategy/scripted"
	"hearthverse/internal/adapter/worldcfg"
	"hearthverse/internal/app/command"
	"hearthverse/internal/app/engine"
	"hearthverse/internal/app/events"
	"hearthverse/internal/app/ports"
	"hearthverse/internal/app/turn"
	"hearthverse/internal/domain/chat"
	"hearthverse/internal/domain/world"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
)

type config struct {
	Addr            string        `env:"HEARTHVERSE_ADDR" envDefault:":8080"`
	WorldFile       string        `env:"HEARTHVERSE_WORLD_FILE" envDefault:"./world.yaml"`
	DatabaseDSN     string        `env:"HEARTHVERSE_DB_DSN"`
	MaxTurns        int           `env:"HEARTHVERSE_MAX_TURNS" envDefault:"0"`
	StrategyTimeout time.Duration `env:"HEARTHVERSE_STRATEGY_TIMEOUT" envDefault:"30s"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	worldDoc, err := worldcfg.Load(cfg.WorldFile)
	if err != nil {
		log.Fatalf("load world: %v", err)
	}
	w, board, err := buildWorld(worldDoc)
	if err != nil {
		log.Fatalf("build world: %v", err)
	}

	eventJournal, sessionJournal, txManager := buildJournals(cfg.DatabaseDSN)

	bus := events.NewBus()
	bus.Journal = eventJournal
	bus.Start()
	defer bus.Stop()

	roster, strategies := buildAgents(worldDoc)
	if len(roster) == 0 {
		log.Fatal("world has no characters with strategies; nothing to simulate")
	}

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = worldDoc.Settings.MaxTurns
	}
	sessionID := uuid.NewString()
	scheduler := turn.NewScheduler(sessionID, roster, maxTurns)

	recorder := metricsinmem.NewRecorder()
	eng := &engine.Engine{
		World:      w,
		Chat:       board,
		Scheduler:  scheduler,
		Resolver:   command.NewResolver(w, board),
		Bus:        bus,
		Strategies: strategies,
		Metrics:    recorder,
		Sessions:   sessionJournal,
		Tx:         txManager,
		Rebuild: func() (*world.World, *chat.Board, error) {
			return buildWorld(worldDoc)
		},
		StrategyTimeout: cfg.StrategyTimeout,
	}
	if sessionJournal != nil {
		if err := sessionJournal.EnsureActive(context.Background(), sessionID, time.Now()); err != nil {
			log.Fatalf("open session: %v", err)
		}
	}

	h := httpadapter.Handler{Engine: eng, KPI: recorder}
	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("hearthverse server listening on %s (agents: %v)", cfg.Addr, roster)
	s.Spin()
}

func buildWorld(doc worldcfg.Config) (*world.World, *chat.Board, error) {
	w, err := worldcfg.Build(doc)
	if err != nil {
		return nil, nil, err
	}
	return w, chat.NewBoard(), nil
}

// buildAgents keeps only characters with an attached strategy in the
// rotation; strategy-less characters stay in the world as scenery NPCs.
func buildAgents(doc worldcfg.Config) ([]string, map[string]ports.AgentStrategy) {
	roster := []string{}
	strategies := map[string]ports.AgentStrategy{}
	for _, c := range doc.Characters {
		if c.Strategy == nil || c.Strategy.Kind == "none" {
			continue
		}
		roster = append(roster, c.Name)
		if c.Strategy.Loop {
			strategies[c.Name] = scripted.NewLooping(c.Strategy.Commands)
		} else {
			strategies[c.Name] = scripted.New(c.Strategy.Commands)
		}
	}
	return roster, strategies
}

func buildJournals(dsn string) (ports.EventJournal, ports.SessionJournal, ports.TxManager) {
	if dsn == "" {
		store := memoryrepo.NewStore()
		return memoryrepo.NewEventJournal(store), memoryrepo.NewSessionJournal(store), memoryrepo.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewEventJournal(db), gormrepo.NewSessionJournal(db), gormrepo.NewTxManager(db)
}
