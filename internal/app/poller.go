package app

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/farefinder/internal/flights"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// CredentialSource holds the API credential currently in effect. Get is
// handed to the client and gateway, so a credential picked up by the poller
// applies from the next request on.
type CredentialSource struct {
	current atomic.Pointer[flights.Credentials]
}

func NewCredentialSource(c flights.Credentials) *CredentialSource {
	s := &CredentialSource{}
	s.current.Store(&c)
	return s
}

// Get returns the current credential.
func (s *CredentialSource) Get() flights.Credentials {
	return *s.current.Load()
}

// Set replaces the credential and reports whether it changed.
func (s *CredentialSource) Set(c flights.Credentials) bool {
	old := s.current.Swap(&c)
	return *old != c
}

// reloadFunc rereads the credential from its sources.
type reloadFunc func() (flights.Credentials, error)

// StartPoller launches a background goroutine that rereads the credential at
// a fixed cadence, backing off while reads fail. It returns immediately.
func StartPoller(ctx context.Context, src *CredentialSource, reload reloadFunc, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if refresh(src, reload, logger) {
				failures = 0
			} else {
				failures++
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh performs one reread. It reports false when the read failed, in
// which case the previous credential stays in effect.
func refresh(src *CredentialSource, reload reloadFunc, logger *zap.Logger) bool {
	creds, err := reload()
	if err != nil {
		logger.Warn("credential reload failed", zap.Error(err))
		return false
	}
	if src.Set(creds) {
		logger.Info("credential changed", zap.Bool("live", creds.Configured()))
	}
	return true
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
