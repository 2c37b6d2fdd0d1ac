package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FixHandler receives each position fix the monitor obtains.
type FixHandler func(Location)

// Monitor polls a Provider and streams position fixes to a handler. It
// stands in for the platform location service: starting it is the
// "permission request", and a provider that cannot deliver fixes simply
// never invokes the handler. Fixes keep arriving until Stop.
type Monitor struct {
	provider Provider
	interval time.Duration
	logger   zerolog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewMonitor creates a Monitor polling provider every interval.
func NewMonitor(provider Provider, interval time.Duration, logger zerolog.Logger) *Monitor {
	return &Monitor{
		provider: provider,
		interval: interval,
		logger:   logger,
	}
}

// Start begins delivering fixes to handler. The first fix is attempted
// immediately, then on every tick.
func (m *Monitor) Start(handler FixHandler) error {
	if m.running {
		m.logger.Warn().Msg("Location monitor is already running")
		return errors.New("location monitor is already running")
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.running = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		m.deliver(handler)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.deliver(handler)
			case <-m.ctx.Done():
				m.logger.Info().Msg("Location monitor is stopping")
				return
			}
		}
	}()

	m.logger.Info().Dur("interval", m.interval).Msg("Location monitor started")
	return nil
}

// Stop terminates fix delivery and closes the provider.
func (m *Monitor) Stop() error {
	if !m.running {
		m.logger.Warn().Msg("Location monitor is not running")
		return errors.New("location monitor is not running")
	}

	m.cancel()
	m.wg.Wait()

	if err := m.provider.Close(); err != nil {
		m.logger.Error().Err(err).Msg("Failed to close location provider")
		return err
	}

	m.running = false
	m.logger.Info().Msg("Location monitor stopped")
	return nil
}

// deliver fetches one fix and hands it to the handler.
func (m *Monitor) deliver(handler FixHandler) {
	fix, err := m.provider.GetLocation()
	if err != nil {
		m.logger.Error().Err(err).Msg("Failed to get location from provider")
		return
	}

	handler(fix)
}
