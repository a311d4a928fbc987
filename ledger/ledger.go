// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Database is the persistence the ledger needs: point reads and atomic
// batches.
type Database interface {
	database.KeyValueReader
	database.Batcher
}

// Ledger serializes state transitions over a [Database]. Each transition
// either lands in one batch or leaves the database untouched.
type Ledger struct {
	l      sync.RWMutex
	log    logging.Logger
	tracer trace.Tracer
	db     Database
}

func New(log logging.Logger, tracer trace.Tracer, db Database) *Ledger {
	return &Ledger{
		log:    log,
		tracer: tracer,
		db:     db,
	}
}

// Execute runs [f] over a private view of the current state. If [f]
// succeeds, every change it made is written atomically. If [f] (or the
// write) fails, nothing is persisted and the error is returned.
func (l *Ledger) Execute(ctx context.Context, name string, f func(context.Context, state.Mutable) error) error {
	l.l.Lock()
	defer l.l.Unlock()

	ctx, span := l.tracer.Start(ctx, "Ledger.Execute", oteltrace.WithAttributes(
		attribute.String("name", name),
	))
	defer span.End()

	ts := tstate.New(0)
	view := ts.NewView(state.NewDatabaseReader(l.db))
	if err := f(ctx, view); err != nil {
		view.Rollback(ctx, 0)
		l.log.Debug("discarded state transition",
			zap.String("name", name),
			zap.Error(err),
		)
		return err
	}
	view.Commit()

	batch := l.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int("changes", ts.ChangedKeys()),
		attribute.Int("ops", ts.OpIndex()),
	)
	l.log.Debug("committed state transition",
		zap.String("name", name),
		zap.Int("changes", ts.ChangedKeys()),
	)
	return nil
}

// Read runs [f] against the committed state. Reads never observe a
// transition in progress.
func (l *Ledger) Read(ctx context.Context, f func(context.Context, state.Immutable) error) error {
	l.l.RLock()
	defer l.l.RUnlock()

	ctx, span := l.tracer.Start(ctx, "Ledger.Read")
	defer span.End()

	return f(ctx, state.NewDatabaseReader(l.db))
}
