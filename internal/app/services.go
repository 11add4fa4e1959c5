package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/actueld/internal/animator"
	"github.com/dokzlo13/actueld/internal/ble"
	"github.com/dokzlo13/actueld/internal/config"
	"github.com/dokzlo13/actueld/internal/daylight"
	"github.com/dokzlo13/actueld/internal/db"
	"github.com/dokzlo13/actueld/internal/geo"
	"github.com/dokzlo13/actueld/internal/ledger"
)

// Services is a container for all application components.
// It manages initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Optional journal
	DB     *db.DB
	Ledger *ledger.Ledger

	// Domain components
	Gate        *geo.Gate
	Fixture     *ble.Fixture
	Channel     *ble.Channel
	Animator    *animator.Animator
	Coordinator *daylight.Coordinator
	Loop        *Loop
}

// NewServices creates all components with proper dependency injection.
// BLE discovery and connection happen here: any failure is fatal, there is
// no retry and no reconnect.
func NewServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	s := &Services{cfg: cfg}

	// Transition journal (optional)
	if !cfg.Ledger.Disabled {
		database, err := db.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, err
		}
		s.DB = database
		s.Ledger = ledger.New(database.DB)
	}

	// Daytime gate for the configured coordinate
	s.Gate = geo.NewGate(cfg.Geo.Lat, cfg.Geo.Lon)
	log.Info().
		Float64("lat", cfg.Geo.Lat).
		Float64("lon", cfg.Geo.Lon).
		Msg("Daylight gate initialized")

	// Discover and connect the fixture
	fixture, err := ble.Connect(ctx, cfg.BLE.NameFilter, cfg.BLE.ScanWindow.Duration())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Fixture = fixture

	if err := fixture.ResolveCommand(cfg.BLE.Characteristic); err != nil {
		s.Close()
		return nil, err
	}

	s.Channel = ble.NewChannel(fixture)

	if s.Ledger != nil {
		s.Ledger.Transition(ledger.EventConnected, time.Now())
	}

	// Color animation
	s.Animator = animator.New(cfg.Animation.StartHue, cfg.Animation.HueStep)

	// Day/night coordination
	var recorder daylight.Recorder
	if s.Ledger != nil {
		recorder = s.Ledger
	}
	s.Coordinator = daylight.NewCoordinator(
		s.Gate,
		s.Channel,
		cfg.Daylight.CheckInterval.Duration(),
		recorder,
	)

	s.Loop = NewLoop(
		s.Coordinator,
		s.Animator,
		s.Channel,
		cfg.Animation.CycleInterval.Duration(),
		cfg.Animation.IdleInterval.Duration(),
	)

	return s, nil
}

// CleanupJournal applies the retention policy to the transition journal
func (s *Services) CleanupJournal() {
	if s.Ledger == nil {
		return
	}
	retention := time.Duration(s.cfg.Ledger.RetentionDays) * 24 * time.Hour
	deleted, err := s.Ledger.DeleteOlderThan(retention)
	if err != nil {
		log.Warn().Err(err).Msg("Journal cleanup failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Journal cleanup done")
	}
}

// Close releases the connection and the journal database
func (s *Services) Close() error {
	var firstErr error

	if s.Fixture != nil {
		if err := s.Fixture.Disconnect(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
