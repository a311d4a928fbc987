// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	_ Subscription[struct{}]        = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}]        = (*Buffer[struct{}])(nil)
	_ SubscriptionFactory[struct{}] = (*SubscriptionFuncFactory[struct{}])(nil)
)

// SubscriptionFactory returns an instance of a concrete Subscription
type SubscriptionFactory[T any] interface {
	New() (Subscription[T], error)
}

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFuncFactory[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFuncFactory[T]) New() (Subscription[T], error) {
	return SubscriptionFunc[T](s), nil
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Buffer retains every accepted event in arrival order.
type Buffer[T any] struct {
	l      sync.Mutex
	events []T
	closed bool
}

var ErrClosed = errors.New("subscription closed")

func (b *Buffer[T]) Accept(_ context.Context, t T) error {
	b.l.Lock()
	defer b.l.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.events = append(b.events, t)
	return nil
}

func (b *Buffer[T]) Close() error {
	b.l.Lock()
	defer b.l.Unlock()

	b.closed = true
	return nil
}

// Events returns a copy of the accepted events.
func (b *Buffer[T]) Events() []T {
	b.l.Lock()
	defer b.l.Unlock()

	return append([]T(nil), b.events...)
}

// NotifyAll delivers [e] to every subscriber, in order, and joins their
// errors. A failing subscriber does not prevent delivery to the rest.
func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscriber and joins their errors.
func CloseAll[T any](subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
