package agent

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"isoworld/internal/engine"
	"isoworld/internal/network"
	"isoworld/pkg/api"
	"isoworld/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type recorder struct {
	mu   sync.Mutex
	cmds []engine.Command
}

func (r *recorder) Submit(cmd engine.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cmds)
}

func snapshot(frame uint64, seed uint32) api.FrameSnapshot {
	return api.FrameSnapshot{
		Type:     api.TypeSnapshot,
		Frame:    frame,
		Seed:     seed,
		Viewport: api.GridMeta{Width: 800, Height: 400},
	}
}

func TestDecideEvery(t *testing.T) {
	b := NewBot(&recorder{}, network.NewBroadcaster(1), 3)
	var clicks int
	for f := uint64(0); f < 9; f++ {
		cmd, ok := b.decide(snapshot(f, 7))
		if !ok {
			continue
		}
		clicks++
		if cmd.Action != api.ActionClick {
			t.Errorf("action = %q", cmd.Action)
		}
		if cmd.X < 0 || cmd.X >= 800 || cmd.Y < 0 || cmd.Y >= 400 {
			t.Errorf("click outside canvas: (%v,%v)", cmd.X, cmd.Y)
		}
	}
	if clicks != 3 {
		t.Errorf("clicks = %d, want 3", clicks)
	}
}

func TestDecideDeterministicPerSeed(t *testing.T) {
	clicks := func(seed uint32) []engine.Command {
		b := NewBot(&recorder{}, network.NewBroadcaster(1), 1)
		var out []engine.Command
		for f := uint64(0); f < 5; f++ {
			cmd, _ := b.decide(snapshot(f, seed))
			out = append(out, cmd)
		}
		return out
	}
	a, again, other := clicks(42), clicks(42), clicks(43)
	for i := range a {
		if a[i] != again[i] {
			t.Fatalf("click %d differs for the same seed", i)
		}
	}
	if a[0] == other[0] {
		t.Error("different seeds gave the same first click")
	}
}

func TestDecideSkipsEmptyViewport(t *testing.T) {
	b := NewBot(&recorder{}, network.NewBroadcaster(1), 1)
	s := snapshot(0, 1)
	s.Viewport = api.GridMeta{}
	if _, ok := b.decide(s); ok {
		t.Error("bot clicked on an empty viewport")
	}
}

func TestRunSubmitsAndUnregisters(t *testing.T) {
	hub := network.NewBroadcaster(1)
	rec := &recorder{}
	b := NewBot(rec, hub, 2)
	if hub.SubscriberCount() != 1 {
		t.Fatalf("subscribers = %d", hub.SubscriberCount())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	for f := uint64(0); f < 4; f++ {
		hub.Publish(snapshot(f, 9))
	}
	deadline := time.Now().Add(time.Second)
	for rec.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("submitted = %d, want 2", rec.count())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done
	if hub.SubscriberCount() != 0 {
		t.Errorf("bot still subscribed")
	}
}
