package locks

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAcquireMutualExclusion(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := reg.Acquire(ctx, "res1")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("saw %d goroutines inside the exclusive section", maxSeen)
	}
}

func TestAcquireIndependentResources(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	releaseA, err := reg.Acquire(ctx, "resA")
	if err != nil {
		t.Fatal(err)
	}
	defer releaseA()

	// a different resource must not be blocked
	done := make(chan struct{})
	go func() {
		releaseB, err := reg.Acquire(ctx, "resB")
		if err == nil {
			releaseB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("independent resources must not serialize against each other")
	}
}

func TestAcquireCancelledWhileWaiting(t *testing.T) {
	reg := NewRegistry()

	release, err := reg.Acquire(context.Background(), "res1")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := reg.Acquire(ctx, "res1"); err == nil {
		t.Fatal("expected a context error while waiting for a held lock")
	}

	// the lock is still usable after the cancelled wait
	release()
	release2, err := reg.Acquire(context.Background(), "res1")
	if err != nil {
		t.Fatalf("lock unusable after cancelled waiter: %v", err)
	}
	release2()
}
