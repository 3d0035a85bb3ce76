package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

var errBroken = errors.New("connection reset")

// fakeSubscriber records delivered messages. It can be told to fail or to
// block until its context expires.
type fakeSubscriber struct {
	id string

	mu       sync.Mutex
	received [][]byte
	fail     bool
	block    bool
	closed   int
}

func newFake(id string) *fakeSubscriber { return &fakeSubscriber{id: id} }

func (f *fakeSubscriber) ID() string { return f.id }

func (f *fakeSubscriber) Send(ctx context.Context, msg []byte) error {
	f.mu.Lock()
	fail, block := f.fail, f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if fail {
		return errBroken
	}

	f.mu.Lock()
	f.received = append(f.received, msg)
	f.mu.Unlock()
	return nil
}

func (f *fakeSubscriber) Close() error {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
	return nil
}

func (f *fakeSubscriber) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.received...)
}

func (f *fakeSubscriber) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
