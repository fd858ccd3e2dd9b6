package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return errors.New("always")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoPermanentStopsEarly(t *testing.T) {
	sentinel := errors.New("fatal")
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return Permanent{Err: sentinel}
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoContextCancelledDuringBackoff(t *testing.T) {
	cfg := Config{MaxAttempts: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour, Multiplier: 1}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := Do(ctx, cfg, func() error { return errors.New("fail") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBackoffCapped(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 4 * time.Second, Multiplier: 2}
	if d := backoffFor(10, cfg); d != 4*time.Second {
		t.Errorf("backoffFor(10) = %v, want cap 4s", d)
	}
	if d := backoffFor(1, cfg); d != 2*time.Second {
		t.Errorf("backoffFor(1) = %v, want 2s", d)
	}
}
