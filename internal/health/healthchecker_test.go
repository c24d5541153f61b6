package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) { /* no-op */ }

func TestServiceHealthFollowsDependencies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := &fakeChecker{name: "store"}
	provider := &fakeChecker{name: "assistant"}
	st.healthy.Store(1)
	provider.healthy.Store(1)

	svc := NewServiceHealthChecker(zerolog.Nop(), st, provider)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, func() bool { return svc.IsHealthy() })

	// One unhealthy dependency takes the whole service down.
	provider.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })

	provider.healthy.Store(1)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func TestServiceHealthStartsUnhealthy(t *testing.T) {
	st := &fakeChecker{name: "store"}
	svc := NewServiceHealthChecker(zerolog.Nop(), st)
	if svc.IsHealthy() {
		t.Fatal("service must report unhealthy before the first evaluation")
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
