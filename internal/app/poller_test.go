package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/farefinder/internal/flights"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 100, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCredentialSourceSet(t *testing.T) {
	src := NewCredentialSource(flights.Credentials{Key: flights.PlaceholderKey})
	if src.Get().Configured() {
		t.Fatalf("placeholder credential should not be configured")
	}
	if !src.Set(flights.Credentials{Key: "real"}) {
		t.Fatalf("Set should report a change")
	}
	if src.Set(flights.Credentials{Key: "real"}) {
		t.Fatalf("Set with the same credential should report no change")
	}
	if got := src.Get().Key; got != "real" {
		t.Fatalf("Get().Key = %q, want real", got)
	}
}

func TestRefreshKeepsCredentialOnFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	src := NewCredentialSource(flights.Credentials{Key: "old"})

	ok := refresh(src, func() (flights.Credentials, error) {
		return flights.Credentials{}, errors.New("read dotenv: permission denied")
	}, logger)
	if ok {
		t.Fatalf("refresh reported success on error")
	}
	if got := src.Get().Key; got != "old" {
		t.Fatalf("Get().Key = %q, want old", got)
	}
	if logs.FilterMessage("credential reload failed").Len() != 1 {
		t.Fatalf("expected a reload failure log entry")
	}

	ok = refresh(src, func() (flights.Credentials, error) {
		return flights.Credentials{Key: "new"}, nil
	}, logger)
	if !ok || src.Get().Key != "new" {
		t.Fatalf("refresh = %v, key = %q; want true, new", ok, src.Get().Key)
	}
	if logs.FilterMessage("credential changed").Len() != 1 {
		t.Fatalf("expected a credential change log entry")
	}
}

func TestStartPollerPicksUpNewCredential(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewCredentialSource(flights.Credentials{})
	var calls atomic.Int32
	StartPoller(ctx, src, func() (flights.Credentials, error) {
		calls.Add(1)
		return flights.Credentials{Key: "rotated"}, nil
	}, 5*time.Millisecond, nil)

	deadline := time.Now().Add(time.Second)
	for src.Get().Key != "rotated" {
		if time.Now().After(deadline) {
			t.Fatalf("poller did not apply the new credential")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("poller kept running after cancel")
	}
}
