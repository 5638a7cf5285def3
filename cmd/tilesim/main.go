package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/section"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/shared/leveldata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const spriteSize = 16

func main() {
	configPath := flag.String("config", "", "TOML config file (empty = built-in defaults)")
	assetsDir := flag.String("assets", ".", "Directory level paths are relative to")
	levelPath := flag.String("level", "", "Level file to simulate (overrides sim.level)")
	levelsDir := flag.String("levels", "", "Simulate every level in this directory instead of one")
	frames := flag.Int("frames", 0, "Frames to simulate (0 = sim.frames)")
	realtime := flag.Bool("realtime", false, "Step at sim.frame_rate instead of as fast as possible")
	logLevel := flag.String("log-level", "", "Log level (overrides logging.level)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *levelPath != "" {
		cfg.Sim.Level = *levelPath
	}
	if *frames > 0 {
		cfg.Sim.Frames = *frames
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.DirFS(*assetsDir), *levelsDir, *realtime, log); err != nil {
		log.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, fsys fs.FS, levelsDir string, realtime bool, log *zap.Logger) error {
	var levels []*leveldata.Level
	if levelsDir != "" {
		byName, names, err := leveldata.LoadAllLevels(ctx, fsys, levelsDir)
		if err != nil {
			return err
		}
		for _, name := range names {
			levels = append(levels, byName[name])
		}
	} else {
		if cfg.Sim.Level == "" {
			return fmt.Errorf("no level given: use -level, -levels or sim.level")
		}
		level, err := leveldata.Load(fsys, cfg.Sim.Level)
		if err != nil {
			return err
		}
		levels = append(levels, level)
	}

	for _, level := range levels {
		if err := simulate(ctx, cfg, level, realtime, log); err != nil {
			return fmt.Errorf("level %s: %w", level.Name, err)
		}
	}
	return nil
}

func simulate(ctx context.Context, cfg *config.Config, level *leveldata.Level, realtime bool, log *zap.Logger) error {
	s, err := section.NewSection(cfg, level, log)
	if err != nil {
		return err
	}

	size := geometry.Vector2{X: spriteSize, Y: spriteSize}
	if _, err := s.SpawnSprites(cfg.Sim.Sprites, size); err != nil {
		return err
	}
	if len(level.SpawnPoints) == 0 {
		center := float32(level.Width)/2 - spriteSize/2
		if _, err := s.AddSprite(geometry.NewBoundingRectangle(center, 0, spriteSize, spriteSize), false); err != nil {
			return err
		}
	}

	respawns := 0
	observe := func(st section.Stats) {
		respawns += st.Respawns
		if st.Frame%cfg.Sim.FrameRate == 0 {
			log.Debug("frame stats",
				zap.Int("frame", st.Frame),
				zap.Int("sprites", st.Sprites),
				zap.Int("sprite_cells", st.SpriteCells),
				zap.Int("tile_cells", st.TileCells),
			)
		}
	}

	if realtime {
		err = section.NewLoop(s, cfg.Sim.FrameRate, cfg.Sim.Frames, observe).Run(ctx)
	} else {
		err = s.Run(cfg.Sim.Frames, observe)
	}
	if err != nil {
		return err
	}

	grounded := 0
	for _, e := range s.Sprites() {
		if st, err := s.Sprite(e); err == nil && st.OnGround {
			grounded++
		}
	}
	stats := s.Stats()
	log.Info("simulation finished",
		zap.String("level", level.Name),
		zap.Int("frames", stats.Frame),
		zap.Int("sprites", stats.Sprites),
		zap.Int("grounded", grounded),
		zap.Int("respawns", respawns),
		zap.Int("tile_cells", stats.TileCells),
	)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
