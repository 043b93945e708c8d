package network

import (
	"testing"

	"isoworld/pkg/api"
)

func TestBroadcasterDelivers(t *testing.T) {
	b := NewBroadcaster(1)
	a := b.Register("a")
	c := b.Register("c")

	b.Publish(api.FrameSnapshot{Frame: 3})
	if s := <-a; s.Frame != 3 {
		t.Errorf("a got frame %d", s.Frame)
	}
	if s := <-c; s.Frame != 3 {
		t.Errorf("c got frame %d", s.Frame)
	}
	if b.SubscriberCount() != 2 {
		t.Errorf("SubscriberCount = %d", b.SubscriberCount())
	}
}

func TestBroadcasterThrottle(t *testing.T) {
	b := NewBroadcaster(6)
	ch := b.Register("x")
	for f := uint64(0); f < 13; f++ {
		b.Publish(api.FrameSnapshot{Frame: f})
	}
	var got []uint64
	for len(ch) > 0 {
		got = append(got, (<-ch).Frame)
	}
	want := []uint64{0, 6, 12}
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
}

func TestBroadcasterSlowSubscriberDrops(t *testing.T) {
	b := NewBroadcaster(0)
	ch := b.Register("slow")
	for f := uint64(0); f < 100; f++ {
		b.Publish(api.FrameSnapshot{Frame: f})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", len(ch), cap(ch))
	}
}

func TestBroadcasterReRegisterAndUnregister(t *testing.T) {
	b := NewBroadcaster(1)
	old := b.Register("id")
	fresh := b.Register("id")

	if _, ok := <-old; ok {
		t.Error("old channel not closed on re-register")
	}
	b.Unregister("id")
	if _, ok := <-fresh; ok {
		t.Error("channel not closed on unregister")
	}
	b.Unregister("id")
	if b.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d", b.SubscriberCount())
	}
}
