package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/ai"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/config"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/db"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/notify"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/patrol"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/reinforce"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

const ConfigPath = "config/combatsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("COMBATSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("combat simulation starting", "log_level", cfg.LogLevel, "strategy", cfg.Strategy)

	// Engagement journal (optional).
	var journal reinforce.Journal
	if cfg.JournalEnabled {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		pool, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting journal database: %w", err)
		}
		defer pool.Close()
		journal = db.NewJournalRepository(pool)
		slog.Info("engagement journal enabled")
	}

	facade := world.NewFacade(world.SystemClock{})
	aiMgr := ai.NewTickManager(0)

	coreCfg := reinforce.DefaultConfig()
	if cfg.Strategy == "ride_cycle" {
		coreCfg.Strategy = reinforce.StrategyRideCycle
	}

	sink := notify.NewLogSink(facade)
	registry := reinforce.NewRegistry(facade, aiMgr, sink, journal, coreCfg)

	setupScenario(facade, aiMgr, registry, coreCfg, cfg.Scenario)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return aiMgr.Start(ctx) })
	g.Go(func() error { return registry.Start(ctx) })

	slog.Info("combat simulation running",
		"strongpoints", cfg.Scenario.Strongpoints*2,
		"spawnPoints", registry.Count(),
		"players", cfg.Scenario.Players)

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// setupScenario builds a two-faction world: a line of friendly strongpoints
// facing a line of enemy-held ones, defender spawn points around each
// friendly strongpoint, and a group of attacking players pushing the first
// friendly strongpoint.
func setupScenario(facade *world.Facade, aiMgr *ai.TickManager, registry *reinforce.Registry, coreCfg reinforce.Config, sc config.ScenarioConfig) {
	defenders := model.NewFaction("USSR", "Soviet Forces")
	attackers := model.NewFaction("US", "US Forces")

	reinforce.RegisterWavePrefabs(facade.RegisterPrefab, coreCfg.Waves)
	facade.RegisterPrefab("Group_Garrison")
	garrison := model.NewGroupTemplate("Group_Garrison", "Garrison Squad", 6)

	for i := range sc.Strongpoints {
		// Friendly and enemy strongpoints 1.5km apart keep everything
		// frontline-classified so garrisons persist.
		friendlyPos := model.NewPosition(float64(i)*3000, 0, 0)
		enemyPos := friendlyPos.Offset(1500, 0, 0)

		friendly := model.NewStrongpoint(facade.NextObjectID(), fmt.Sprintf("Outpost %c", 'A'+i), friendlyPos, defenders)
		enemy := model.NewStrongpoint(facade.NextObjectID(), fmt.Sprintf("FOB %d", i+1), enemyPos, attackers)
		facade.AddStrongpoint(friendly)
		facade.AddStrongpoint(enemy)

		for j := range sc.SpawnPoints {
			spawnPos := friendlyPos.Offset(float64(j+1)*40, 0, float64(j+1)*25)
			cycle := patrol.NewCycle(facade, aiMgr, defenders, spawnPos,
				patrol.DefenderProfile(garrison), waveProfileLookup(coreCfg))
			guard := reinforce.NewLifecycleGuard(facade, coreCfg.FrontlineRange, coreCfg.InactivityGrace)

			sp := reinforce.NewSpawnPoint(facade.NextObjectID(), defenders, spawnPos, cycle, guard)
			registry.Register(sp)
		}
	}

	// Attacking players converge on the first friendly strongpoint.
	for range sc.Players {
		pos := model.NewPosition(100, 0, 100)
		facade.AddActor(model.NewActor(facade.NextObjectID(), attackers, pos, true))
	}
}

// waveProfileLookup adapts the wave table for ride-the-cycle spawns.
func waveProfileLookup(cfg reinforce.Config) func(wave int32) (patrol.Profile, bool) {
	return func(wave int32) (patrol.Profile, bool) {
		for _, w := range cfg.Waves {
			if w.Number == wave && len(w.Groups) > 0 {
				return patrol.Profile{
					RespawnPeriod: patrol.DefenderRespawnPeriod,
					GroupCount:    len(w.Groups),
					Dispersion:    w.MaxRadius,
					Template:      w.Groups[0],
				}, true
			}
		}
		return patrol.Profile{}, false
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
