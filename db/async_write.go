package db

import (
	"context"
	"sync"
	"time"
)

// DefaultChannelCapacity is the default buffer size for queued writes.
const DefaultChannelCapacity = 100

// WriteOperation is one queued write.
type WriteOperation struct {
	Data      any
	Timestamp time.Time
}

// WriteHandler performs a queued write. It owns its own error reporting.
type WriteHandler func(op WriteOperation) error

// AsyncWriter drains queued writes on a background goroutine so drop
// dispatch never waits on the history table.
type AsyncWriter struct {
	writeChan chan WriteOperation
	handler   WriteHandler
	onError   func(error)
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
	mu        sync.Mutex
}

// NewAsyncWriter creates a writer with DefaultChannelCapacity.
func NewAsyncWriter(handler WriteHandler) *AsyncWriter {
	return NewAsyncWriterWithCapacity(handler, DefaultChannelCapacity)
}

// NewAsyncWriterWithCapacity creates a writer with a custom buffer size.
func NewAsyncWriterWithCapacity(handler WriteHandler, capacity int) *AsyncWriter {
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncWriter{
		writeChan: make(chan WriteOperation, capacity),
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// OnError sets a callback for handler failures. Must be called before Start.
func (w *AsyncWriter) OnError(fn func(error)) {
	w.onError = fn
}

// Start launches the background goroutine. Calling it twice is a no-op.
func (w *AsyncWriter) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.processWrites()
}

func (w *AsyncWriter) processWrites() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			w.drain()
			return
		case op := <-w.writeChan:
			w.handle(op)
		}
	}
}

func (w *AsyncWriter) drain() {
	for {
		select {
		case op := <-w.writeChan:
			w.handle(op)
		default:
			return
		}
	}
}

func (w *AsyncWriter) handle(op WriteOperation) {
	if err := w.handler(op); err != nil && w.onError != nil {
		w.onError(err)
	}
}

// Write queues data without blocking. It reports false when the buffer is full.
func (w *AsyncWriter) Write(data any) bool {
	select {
	case w.writeChan <- WriteOperation{Data: data, Timestamp: time.Now()}:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued operations.
func (w *AsyncWriter) Pending() int {
	return len(w.writeChan)
}

// Stop cancels the writer and waits for queued operations to drain.
func (w *AsyncWriter) Stop() {
	w.cancel()
	w.wg.Wait()
}

// StopWithTimeout is Stop bounded by timeout. It reports whether the drain finished.
func (w *AsyncWriter) StopWithTimeout(timeout time.Duration) bool {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// IsStarted reports whether Start has been called.
func (w *AsyncWriter) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}
