// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package audit

import (
	"context"
	"runtime/trace"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents a filesystem scan in flight, such as walking the
// applications directories or an icon theme tree.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Op    string // operation name, e.g. "desktop.scan"
	Root  string // directory the scan started from
	Count int    // number of entries found
	Error error
}

func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "scan."+span.Op)

	return ctx
}

func (span *Span) End() {
	// only record once
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

func (span Span) Log() {
	event := log.Debug()

	event.Str("sys", "scan")
	event.Str("op", span.Op)
	event.Str("root", span.Root)
	event.Int("count", span.Count)
	event.Dur("dur", span.duration)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}
