package onair

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

type fakeSource struct {
	snaps []station.Snapshot
	err   error
	calls int
}

func (s *fakeSource) Snapshot() (station.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return station.Snapshot{}, s.err
	}
	snap := s.snaps[0]
	if len(s.snaps) > 1 {
		s.snaps = s.snaps[1:]
	}
	return snap, nil
}

type fakePublisher struct {
	sent []station.Snapshot
	err  error
}

func (p *fakePublisher) Publish(snap station.Snapshot) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, snap)
	return nil
}

type fakeCache struct{ sets int }

func (c *fakeCache) Set(context.Context, station.Snapshot) error {
	c.sets++
	return nil
}

func snap(active string, until int) station.Snapshot {
	s := station.Snapshot{GeneratedAt: time.Now()}
	if active != "" {
		s.Active = &schedule.ActiveProgram{Airing: schedule.Airing{ProgramID: active}}
	}
	if until > 0 {
		s.Incoming = &schedule.IncomingProgram{Airing: schedule.Airing{ProgramID: "next"}, MinutesUntil: until}
	}
	return s
}

func TestRefreshPublishesOnlyOnChange(t *testing.T) {
	src := &fakeSource{snaps: []station.Snapshot{
		snap("a", 0), snap("a", 0), snap("a", 9), snap("a", 8), snap("", 0),
	}}
	pub := &fakePublisher{}
	cache := &fakeCache{}
	p := NewPoller(src, WithPublisher(pub), WithCache(cache))

	for i := 0; i < 5; i++ {
		p.Refresh()
	}

	assert.Equal(t, 5, cache.sets)
	require.Len(t, pub.sent, 3)
	assert.Nil(t, pub.sent[0].Incoming)
	assert.Equal(t, 9, pub.sent[1].Incoming.MinutesUntil)
	assert.Nil(t, pub.sent[2].Active)
}

func TestRefreshRetriesFailedPublish(t *testing.T) {
	src := &fakeSource{snaps: []station.Snapshot{snap("a", 0)}}
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewPoller(src, WithPublisher(pub))

	p.Refresh()
	assert.Empty(t, pub.sent)

	pub.err = nil
	p.Refresh()
	assert.Len(t, pub.sent, 1)
}

func TestRefreshKeepsLastOnSourceError(t *testing.T) {
	src := &fakeSource{snaps: []station.Snapshot{snap("a", 0)}}
	p := NewPoller(src)

	_, ok := p.Last()
	assert.False(t, ok)

	p.Refresh()
	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, "a", last.Active.ProgramID)

	src.err = errors.New("db gone")
	p.Refresh()
	last, ok = p.Last()
	require.True(t, ok)
	assert.Equal(t, "a", last.Active.ProgramID)
}

func TestStartRunsImmediately(t *testing.T) {
	src := &fakeSource{snaps: []station.Snapshot{snap("a", 0)}}
	p := NewPoller(src)

	require.NoError(t, p.Start())
	p.Stop()
	assert.GreaterOrEqual(t, src.calls, 1)
}

func TestStartRejectsBadSpec(t *testing.T) {
	p := NewPoller(&fakeSource{snaps: []station.Snapshot{snap("a", 0)}}, WithSpec("every minute"))
	assert.Error(t, p.Start())
}

func TestStopBeforeStart(t *testing.T) {
	assert.NotPanics(t, NewPoller(&fakeSource{}).Stop)
}
