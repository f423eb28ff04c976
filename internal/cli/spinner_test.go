package cli

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner(context.Background(), "working")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()
}

func TestSpinnerConcurrentStop(t *testing.T) {
	s := newSpinner(context.Background(), "working")
	s.Start()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()
}

func TestSpinnerStopAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "working")
	s.Start()

	cancel()
	time.Sleep(2 * spinnerInterval)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner(context.Background(), "rendering")
	s.Start()
	time.Sleep(spinnerInterval)
	s.StopWithError("render failed")
}
