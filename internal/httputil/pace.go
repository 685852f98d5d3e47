// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"time"
)

// Pacer enforces a minimum spacing between consecutive remote calls.
// The search provider rate-limits aggressive clients; a fixed inter-call
// pause keeps a run inside those limits without retry loops.
type Pacer struct {
	last time.Time

	// now and sleep are overridable so tests avoid real clock waits.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer returns a pacer whose first Wait never blocks.
func NewPacer() *Pacer {
	return &Pacer{now: time.Now, sleep: sleepCtx}
}

// Wait blocks until at least spacing has elapsed since the previous call,
// then records the call time. If the context is cancelled during the pause
// Wait returns ctx.Err() without recording.
func (p *Pacer) Wait(ctx context.Context, spacing time.Duration) error {
	if !p.last.IsZero() && spacing > 0 {
		if remaining := spacing - p.now().Sub(p.last); remaining > 0 {
			if err := p.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	p.last = p.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
