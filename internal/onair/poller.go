// Package onair keeps the published on-air snapshot current.
package onair

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

// EveryMinute fires on second zero, when slot boundaries are crossed.
const EveryMinute = "0 * * * * *"

const cacheTimeout = 3 * time.Second

type Source interface {
	Snapshot() (station.Snapshot, error)
}

type Publisher interface {
	Publish(snap station.Snapshot) error
}

type Cache interface {
	Set(ctx context.Context, snap station.Snapshot) error
}

type Option func(*Poller)

// WithPublisher pushes a snapshot whenever the airing changes.
func WithPublisher(p Publisher) Option {
	return func(poller *Poller) { poller.publisher = p }
}

// WithCache stores every tick's snapshot.
func WithCache(c Cache) Option {
	return func(poller *Poller) { poller.cache = c }
}

// WithSpec replaces the EveryMinute cron spec.
func WithSpec(spec string) Option {
	return func(poller *Poller) { poller.spec = spec }
}

// Poller recomputes the snapshot on a cron schedule. Ticks never overlap.
type Poller struct {
	source    Source
	publisher Publisher
	cache     Cache
	spec      string
	cron      *cron.Cron

	mu        sync.Mutex
	last      station.Snapshot
	published bool
}

func NewPoller(source Source, opts ...Option) *Poller {
	p := &Poller{source: source, spec: EveryMinute}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start schedules the ticks and runs the first one right away.
func (p *Poller) Start() error {
	p.cron = cron.New(cron.WithSeconds())
	if _, err := p.cron.AddFunc(p.spec, p.Refresh); err != nil {
		return fmt.Errorf("schedule poller %q: %w", p.spec, err)
	}
	p.Refresh()
	p.cron.Start()
	log.Info().Str("spec", p.spec).Msg("on-air poller started")
	return nil
}

// Stop waits for a running tick to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	log.Info().Msg("on-air poller stopped")
}

// Last returns the most recent snapshot, if any tick has succeeded.
func (p *Poller) Last() (station.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, !p.last.GeneratedAt.IsZero()
}

// Refresh runs one tick now. A failed tick is logged and retried by the next one.
func (p *Poller) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap, err := p.source.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("on-air tick failed")
		return
	}

	if p.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		if err := p.cache.Set(ctx, snap); err != nil {
			log.Error().Err(err).Msg("failed to cache on-air snapshot")
		}
		cancel()
	}

	changed := !p.published || !p.last.SameAiring(snap)
	p.last = snap
	if !changed || p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(snap); err != nil {
		log.Error().Err(err).Msg("failed to publish on-air snapshot")
		p.published = false
		return
	}
	p.published = true

	ev := log.Info().Str("weekday", string(snap.Weekday)).Int("minutes", snap.Moment.Minutes)
	if snap.Active != nil {
		ev = ev.Str("active", snap.Active.ProgramID)
	}
	if snap.Incoming != nil {
		ev = ev.Str("incoming", snap.Incoming.ProgramID)
	}
	ev.Msg("on-air changed")
}
