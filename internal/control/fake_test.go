package control

import (
	"context"
	"errors"
	"sync"

	"github.com/jfmyers9/mediactl/internal/media"
)

// fakeSession is an in-memory media.Session that records invocations
type fakeSession struct {
	id        string
	props     media.Properties
	info      media.PlaybackInfo
	timeline  media.Timeline
	invokeErr error

	mu    sync.Mutex
	calls []string
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Properties(ctx context.Context) (*media.Properties, error) {
	p := s.props
	return &p, nil
}

func (s *fakeSession) PlaybackInfo(ctx context.Context) (*media.PlaybackInfo, error) {
	i := s.info
	return &i, nil
}

func (s *fakeSession) Timeline(ctx context.Context) (*media.Timeline, error) {
	t := s.timeline
	return &t, nil
}

func (s *fakeSession) Play(ctx context.Context) error            { return s.record("Play") }
func (s *fakeSession) Pause(ctx context.Context) error           { return s.record("Pause") }
func (s *fakeSession) TogglePlayPause(ctx context.Context) error { return s.record("TogglePlayPause") }
func (s *fakeSession) Stop(ctx context.Context) error            { return s.record("Stop") }
func (s *fakeSession) Previous(ctx context.Context) error        { return s.record("Previous") }
func (s *fakeSession) Next(ctx context.Context) error            { return s.record("Next") }

func (s *fakeSession) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.invokeErr
}

func (s *fakeSession) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// fakeProvider reports a fixed set of sessions, optionally all at once
// from separate goroutines
type fakeProvider struct {
	sessions   []*fakeSession
	concurrent bool
	err        error
	calls      int
}

func (p *fakeProvider) Sessions(ctx context.Context, fn media.SessionFunc) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	if !p.concurrent {
		for _, s := range p.sessions {
			fn(ctx, s)
		}
		return nil
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, s := range p.sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			fn(ctx, s)
		}()
	}
	close(start)
	wg.Wait()
	return nil
}

func newUnsupportedProvider() *fakeProvider {
	return &fakeProvider{err: errors.Join(errors.New("no bus"), media.ErrUnsupported)}
}

// allControls enables every transport control
var allControls = media.Controls{Play: true, Pause: true, Stop: true, Previous: true, Next: true}
