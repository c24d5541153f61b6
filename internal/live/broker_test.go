package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrokerNotifyWakesWatcher(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Watch("expenses")
	defer cancel()

	b.Notify("expenses")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("watcher not signalled")
	}
	require.EqualValues(t, 1, b.Revision("expenses"))
}

func TestBrokerCoalescesSignals(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Watch("chores")
	defer cancel()

	for i := 0; i < 5; i++ {
		b.Notify("chores")
	}
	<-ch
	select {
	case <-ch:
		t.Fatal("expected signals to coalesce into one pending wakeup")
	default:
	}
	require.EqualValues(t, 5, b.Revision("chores"))
}

func TestBrokerIsolatesCollections(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Watch("notes")
	defer cancel()

	b.Notify("polls")
	select {
	case <-ch:
		t.Fatal("notes watcher woke for a polls change")
	default:
	}
}

func TestBrokerCancelUnregisters(t *testing.T) {
	b := NewBroker()
	_, cancel := b.Watch("moods")
	require.Equal(t, 1, b.WatcherCount("moods"))
	cancel()
	require.Equal(t, 0, b.WatcherCount("moods"))
}
