package section

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run steps the section frames times as fast as possible, handing every
// frame's stats to observe when it is not nil.
func (s *Section) Run(frames int, observe func(Stats)) error {
	for i := 0; i < frames; i++ {
		stats, err := s.Step()
		if err != nil {
			return err
		}
		if observe != nil {
			observe(stats)
		}
	}
	return nil
}

// Loop steps a section at a fixed tick rate.
type Loop struct {
	section  *Section
	tickRate int
	frames   int
	observe  func(Stats)
}

// NewLoop creates a loop that stops after frames steps; zero runs until the
// context is cancelled. A tickRate below one uses the section's configured
// frame rate.
func NewLoop(s *Section, tickRate, frames int, observe func(Stats)) *Loop {
	if tickRate < 1 {
		tickRate = s.cfg.Sim.FrameRate
	}
	return &Loop{
		section:  s,
		tickRate: tickRate,
		frames:   frames,
		observe:  observe,
	}
}

func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log := l.section.log
	log.Info("loop started", zap.Int("tick_rate", l.tickRate))

	for done := 0; l.frames == 0 || done < l.frames; done++ {
		select {
		case <-ctx.Done():
			log.Info("loop stopped", zap.Int("frame", l.section.Frame()))
			return ctx.Err()
		case <-ticker.C:
			stats, err := l.section.Step()
			if err != nil {
				return err
			}
			if l.observe != nil {
				l.observe(stats)
			}
		}
	}

	log.Info("loop finished", zap.Int("frame", l.section.Frame()))
	return nil
}
