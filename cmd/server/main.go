package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"robogrid/db"
	httpadapter "robogrid/internal/adapter/http"
	"robogrid/internal/adapter/journal"
	staticmaps "robogrid/internal/adapter/maps/static"
	metricsinmem "robogrid/internal/adapter/metrics/inmemory"
	gormrepo "robogrid/internal/adapter/repo/gorm"
	"robogrid/internal/adapter/repo/memory"
	sqliterepo "robogrid/internal/adapter/repo/sqlite"
	"robogrid/internal/adapter/robot"
	"robogrid/internal/adapter/world/generator"
	"robogrid/internal/app/ports"
	"robogrid/internal/app/replay"
	"robogrid/internal/app/runs"
	"robogrid/internal/app/simulation"
	"robogrid/internal/domain/world"
	"robogrid/internal/tuning"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type repos struct {
	name   string
	tx     ports.TxManager
	runs   ports.RunRepository
	events ports.EventRepository
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadTuning()
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}
	store, err := buildRepos(ctx)
	if err != nil {
		log.Fatalf("open %s: %v", store.name, err)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Printf("close %s: %v", store.name, err)
		}
	}()

	maps := staticmaps.Provider{Root: resolveMapsRoot()}
	gen, genName, err := buildGenerator(cfg, maps)
	if err != nil {
		log.Fatalf("build generator: %v", err)
	}
	builder, err := robot.New(cfg.Robot.Name, cfg.Robot.MaxSteps)
	if err != nil {
		log.Fatalf("build robot: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	sim := simulation.UseCase{
		TxManager: store.tx,
		Runs:      store.runs,
		Events:    store.events,
		Metrics:   kpiRecorder,
		Now:       time.Now,
	}
	if dir := strings.TrimSpace(os.Getenv("ROBOGRID_JOURNAL_DIR")); dir != "" {
		sim.OpenTickLog = func(runID string) (ports.TickLogger, error) {
			return journal.Open(dir, runID)
		}
	}
	req := simulation.Request{
		RobotName:     cfg.Robot.Name,
		GeneratorName: genName,
		Seed:          cfg.World.Seed,
		Generator:     gen,
		Robot:         builder,
		Runner:        cfg.RunnerConfig(),
	}

	runSim := func(ctx context.Context) error {
		log.Printf("robogrid run starting: robot=%s generator=%s ticks=%d storage=%s", req.RobotName, genName, cfg.Ticks, store.name)
		resp, err := sim.Execute(ctx, req)
		if err != nil {
			return fmt.Errorf("run %s: %w", resp.Run.RunID, err)
		}
		log.Print(summaryLine(resp))
		return nil
	}

	if !boolEnv("ROBOGRID_SERVE", true) {
		if err := runSim(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	addr := getenv("ROBOGRID_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h := httpadapter.Handler{
		RunsUC:   runs.UseCase{Runs: store.runs},
		ReplayUC: replay.UseCase{Runs: store.runs, Events: store.events},
		Maps:     maps,
		KPI:      kpiRecorder,
	}
	h.RegisterRoutes(s)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("robogrid server listening on %s", addr)
		return s.Run()
	})
	g.Go(func() error {
		return runSim(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Println("robogrid server stopped")
}

func loadTuning() (tuning.Tuning, error) {
	cfg := tuning.Default()
	if path := strings.TrimSpace(os.Getenv("ROBOGRID_TUNING")); path != "" {
		loaded, err := tuning.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	applyEnv(&cfg)
	if cfg.World.Generator == "map" && cfg.World.Map == "" {
		return cfg, fmt.Errorf("%w: ROBOGRID_MAP is required for the map generator", tuning.ErrInvalidTuning)
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *tuning.Tuning) {
	cfg.Ticks = intEnv("ROBOGRID_TICKS", cfg.Ticks)
	cfg.EnergyPerTick = intEnv("ROBOGRID_ENERGY_PER_TICK", cfg.EnergyPerTick)
	cfg.World.Seed = int64(intEnv("ROBOGRID_SEED", int(cfg.World.Seed)))
	cfg.World.Generator = getenv("ROBOGRID_GENERATOR", cfg.World.Generator)
	cfg.World.Map = getenv("ROBOGRID_MAP", cfg.World.Map)
	cfg.Robot.Name = getenv("ROBOGRID_ROBOT", cfg.Robot.Name)
}

func buildRepos(ctx context.Context) (repos, error) {
	if dsn := strings.TrimSpace(os.Getenv("ROBOGRID_DB_DSN")); dsn != "" {
		out := repos{name: "postgres", close: func() error { return nil }}
		gdb, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			return out, err
		}
		if err := migrate(ctx, gdb); err != nil {
			return out, err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			out.close = sqlDB.Close
		}
		out.tx = gormrepo.NewTxManager(gdb)
		out.runs = gormrepo.NewRunRepo(gdb)
		out.events = gormrepo.NewEventRepo(gdb)
		return out, nil
	}
	if path := strings.TrimSpace(os.Getenv("ROBOGRID_SQLITE_PATH")); path != "" {
		out := repos{name: "sqlite", close: func() error { return nil }}
		sdb, err := sqliterepo.Open(path)
		if err != nil {
			return out, err
		}
		out.close = sdb.Close
		out.tx = sqliterepo.NewTxManager(sdb)
		out.runs = sqliterepo.NewRunRepo(sdb)
		out.events = sqliterepo.NewEventRepo(sdb)
		return out, nil
	}
	store := memory.NewStore()
	return repos{
		name:   "memory",
		tx:     memory.NewTxManager(store),
		runs:   memory.NewRunRepo(store),
		events: memory.NewEventRepo(store),
		close:  func() error { return nil },
	}, nil
}

// migrate applies ROBOGRID_MIGRATIONS_DIR when set, otherwise the embedded
// migrations.
func migrate(ctx context.Context, gdb *gorm.DB) error {
	if dir := strings.TrimSpace(os.Getenv("ROBOGRID_MIGRATIONS_DIR")); dir != "" {
		return gormrepo.ApplyMigrations(ctx, gdb, dir)
	}
	migrations, err := db.Migrations()
	if err != nil {
		return err
	}
	return gormrepo.ApplyMigrationsFS(ctx, gdb, migrations)
}

func buildGenerator(cfg tuning.Tuning, maps staticmaps.Provider) (world.Generator, string, error) {
	if cfg.World.Generator == "map" {
		return maps.Generator(cfg.World.Map), "map:" + cfg.World.Map, nil
	}
	gen, err := generator.New(cfg.World.Generator, generator.Config{
		Rows: cfg.World.Rows,
		Cols: cfg.World.Cols,
		Seed: cfg.World.Seed,
	})
	if err != nil {
		return nil, "", err
	}
	return gen, cfg.World.Generator, nil
}

func resolveMapsRoot() string {
	if root := strings.TrimSpace(os.Getenv("ROBOGRID_MAPS_ROOT")); root != "" {
		return root
	}
	if st, err := os.Stat("./maps"); err == nil && st.IsDir() {
		return "./maps"
	}
	return "/usr/share/robogrid/maps"
}

func summaryLine(resp simulation.Response) string {
	s := resp.Summary
	return fmt.Sprintf("robogrid run %s %s: ticks=%d minted=%s consumed=%s moves=%d destroyed=%d discovered=%d events=%s final=%s",
		resp.Run.RunID,
		resp.Run.Status,
		s.Ticks,
		humanize.Comma(int64(s.EnergyMinted)),
		humanize.Comma(int64(s.EnergyConsumed)),
		s.Moves,
		s.Destroyed,
		s.Discovered,
		humanize.Comma(int64(s.Events)),
		s.Final,
	)
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
