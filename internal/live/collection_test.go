package live

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/model"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestCollectionSubscriberIdleWithoutQuery(t *testing.T) {
	sub := NewCollectionSubscriber(NewBroker(), events.NewBus(), func(ctx context.Context) ([]*model.Note, error) {
		t.Fatal("fetch must not run without a query")
		return nil, nil
	}, nil)
	defer sub.Close()

	data, loading := sub.Snapshot()
	require.Nil(t, data)
	require.False(t, loading)
}

func TestCollectionSubscriberFetchesAndRefetches(t *testing.T) {
	broker := NewBroker()
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]*model.Note, error) {
		n := calls.Add(1)
		out := make([]*model.Note, n)
		for i := range out {
			out[i] = &model.Note{ID: "n", Content: "hi"}
		}
		return out, nil
	}
	sub := NewCollectionSubscriber(broker, events.NewBus(), fetch, nil)
	defer sub.Close()

	sub.SetQuery(&Query{Collection: "notes"})
	waitFor(t, func() bool { d, l := sub.Snapshot(); return !l && len(d) == 1 }, "initial fetch not delivered")

	broker.Notify("notes")
	waitFor(t, func() bool { d, _ := sub.Snapshot(); return len(d) == 2 }, "change signal did not trigger refetch")
}

func TestCollectionSubscriberAppliesQuery(t *testing.T) {
	broker := NewBroker()
	fetch := func(ctx context.Context) ([]*model.Expense, error) {
		return []*model.Expense{
			{ID: "1", Amount: 10, Category: model.CategoryFood},
			{ID: "2", Amount: 20, Category: model.CategoryRent},
		}, nil
	}
	sub := NewCollectionSubscriber(broker, events.NewBus(), fetch, nil)
	defer sub.Close()

	sub.SetQuery(&Query{Collection: "expenses", Filters: []Filter{{Field: "category", Op: "==", Value: "Food"}}})
	waitFor(t, func() bool { d, l := sub.Snapshot(); return !l && len(d) == 1 }, "filtered fetch not delivered")
	d, _ := sub.Snapshot()
	require.Equal(t, "1", d[0].ID)
}

func TestCollectionSubscriberEscalatesFetchError(t *testing.T) {
	broker := NewBroker()
	bus := events.NewBus()
	var got atomic.Value
	bus.Subscribe(events.TopicPermissionError, func(payload interface{}) {
		got.Store(payload)
	})

	fetch := func(ctx context.Context) ([]*model.Note, error) {
		return nil, errors.New("RLS rejected the read")
	}
	sub := NewCollectionSubscriber(broker, bus, fetch, nil)
	defer sub.Close()

	sub.SetQuery(&Query{Collection: "notes"})
	waitFor(t, func() bool { return sub.Failed() }, "fetch error not surfaced")

	pe, ok := got.Load().(*PermissionError)
	require.True(t, ok)
	require.Equal(t, "notes", pe.Path)
	require.Equal(t, "list", pe.Op)

	data, loading := sub.Snapshot()
	require.Nil(t, data)
	require.False(t, loading)

	// a stopped subscription ignores further change signals
	require.Equal(t, 0, broker.WatcherCount("notes"))
}

func TestCollectionSubscriberSameKeyIsNoOp(t *testing.T) {
	broker := NewBroker()
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]*model.Note, error) {
		calls.Add(1)
		return []*model.Note{{ID: "n1"}}, nil
	}
	sub := NewCollectionSubscriber(broker, events.NewBus(), fetch, nil)
	defer sub.Close()

	q := &Query{Collection: "notes", Limit: 3}
	sub.SetQuery(q)
	waitFor(t, func() bool { return calls.Load() == 1 }, "initial fetch not delivered")

	sub.SetQuery(&Query{Collection: "notes", Limit: 3})
	time.Sleep(20 * time.Millisecond)
	require.EqualValues(t, 1, calls.Load(), "structurally equal query must not restart the watch")

	sub.SetQuery(&Query{Collection: "notes", Limit: 4})
	waitFor(t, func() bool { return calls.Load() == 2 }, "changed query did not restart the watch")
}

func TestCollectionSubscriberNoDeliveryAfterClose(t *testing.T) {
	broker := NewBroker()
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]*model.Note, error) {
		<-release
		return []*model.Note{{ID: "n1"}}, nil
	}
	var delivered atomic.Bool
	sub := NewCollectionSubscriber(broker, events.NewBus(), fetch, func([]*model.Note) {
		delivered.Store(true)
	})

	sub.SetQuery(&Query{Collection: "notes"})
	sub.Close()
	close(release)

	time.Sleep(50 * time.Millisecond)
	require.False(t, delivered.Load(), "callback fired after Close")
	data, loading := sub.Snapshot()
	require.Nil(t, data)
	require.False(t, loading)
}

func TestDocumentSubscriberAbsenceIsNotAnError(t *testing.T) {
	broker := NewBroker()
	bus := events.NewBus()
	var escalated atomic.Bool
	bus.Subscribe(events.TopicPermissionError, func(interface{}) { escalated.Store(true) })

	fetch := func(ctx context.Context) (*model.Poll, error) {
		return nil, model.ErrNotFound
	}
	sub := NewDocumentSubscriber(broker, bus, fetch, nil)
	defer sub.Close()

	sub.SetPath("polls", "gone")
	waitFor(t, func() bool { _, _, l := sub.Snapshot(); return !l }, "absent fetch not resolved")

	doc, exists, _ := sub.Snapshot()
	require.Nil(t, doc)
	require.False(t, exists)
	require.False(t, escalated.Load(), "absence must not publish a permission error")
	require.False(t, sub.Failed())
}

func TestDocumentSubscriberDeniedFetchEscalates(t *testing.T) {
	broker := NewBroker()
	bus := events.NewBus()
	var got atomic.Value
	bus.Subscribe(events.TopicPermissionError, func(payload interface{}) {
		got.Store(payload)
	})

	fetch := func(ctx context.Context) (*model.Poll, error) {
		return nil, model.ErrDenied
	}
	sub := NewDocumentSubscriber(broker, bus, fetch, nil)
	defer sub.Close()

	sub.SetPath("polls", "p9")
	waitFor(t, func() bool { return sub.Failed() }, "denied fetch not surfaced")

	pe, ok := got.Load().(*PermissionError)
	require.True(t, ok)
	require.Equal(t, "polls/p9", pe.Path)
	require.Equal(t, "get", pe.Op)
	require.Equal(t, 0, broker.WatcherCount("polls"))
}

func TestDocumentSubscriberTracksChanges(t *testing.T) {
	broker := NewBroker()
	var version atomic.Int32
	fetch := func(ctx context.Context) (*model.Poll, error) {
		return &model.Poll{ID: "p1", Question: "v", Options: []model.PollOption{{Votes: int(version.Load())}}}, nil
	}
	sub := NewDocumentSubscriber(broker, events.NewBus(), fetch, nil)
	defer sub.Close()

	sub.SetPath("polls", "p1")
	waitFor(t, func() bool { _, ex, l := sub.Snapshot(); return ex && !l }, "initial fetch not delivered")

	version.Store(7)
	broker.Notify("polls")
	waitFor(t, func() bool {
		doc, _, _ := sub.Snapshot()
		return doc != nil && len(doc.Options) == 1 && doc.Options[0].Votes == 7
	}, "change signal did not refresh the document")
}
