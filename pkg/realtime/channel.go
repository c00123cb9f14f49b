// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package realtime keeps the server-push delta connection alive.
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// State of the realtime connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the channel will not reconnect from s.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}

const (
	DefaultReconnectDelay    = 5 * time.Second
	DefaultMaxReconnectDelay = 60 * time.Second
	DefaultMaxReconnects     = 10
)

// ErrRetriesExhausted is reported when the reconnect cap is reached.
var ErrRetriesExhausted = errors.New("realtime reconnect attempts exhausted")

// Stream is one open server-push connection.
type Stream interface {
	// Next blocks until the next message payload arrives.
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Dialer opens streams.
type Dialer interface {
	Dial(ctx context.Context) (Stream, error)
}

// Config controls reconnection.
type Config struct {
	// ReconnectDelay is the wait before the first reconnect.
	ReconnectDelay time.Duration
	// MaxReconnectDelay caps the doubling reconnect wait.
	MaxReconnectDelay time.Duration
	// MaxReconnects caps consecutive failed reconnects. Zero never gives up.
	MaxReconnects int
}

func (c Config) withDefaults() Config {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = DefaultReconnectDelay
	}
	if c.MaxReconnectDelay < c.ReconnectDelay {
		c.MaxReconnectDelay = DefaultMaxReconnectDelay
		if c.MaxReconnectDelay < c.ReconnectDelay {
			c.MaxReconnectDelay = c.ReconnectDelay
		}
	}
	if c.MaxReconnects < 0 {
		c.MaxReconnects = 0
	}
	return c
}

// Channel runs the connect, read and reconnect loop of one realtime stream
// and hands every message payload to a handler.
type Channel struct {
	dialer  Dialer
	handler func([]byte)
	cfg     Config

	mu        sync.Mutex
	state     State
	attempts  int
	lastErr   error
	stream    *onceStream
	observers []func(State)
	started   bool
	cancel    context.CancelFunc
	done      chan struct{}

	// dispatchMu serializes handler calls with Close.
	dispatchMu sync.Mutex
	closed     bool
	closeOnce  sync.Once
}

// NewChannel creates a channel. Start begins connecting.
func NewChannel(dialer Dialer, handler func([]byte), cfg Config) *Channel {
	return &Channel{
		dialer:  dialer,
		handler: handler,
		cfg:     cfg.withDefaults(),
		state:   StateDisconnected,
		done:    make(chan struct{}),
	}
}

// OnStateChange registers an observer called on every state transition.
func (c *Channel) OnStateChange(fn func(State)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// State returns the current state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempts returns the consecutive failed connection count.
func (c *Channel) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// LastError returns the last connection error, if any.
func (c *Channel) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Done is closed when the loop has exited.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Start runs the loop in the background. Calling it twice is a no-op.
func (c *Channel) Start(ctx context.Context) {
	if c.isClosed() {
		return
	}
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	go c.run(ctx)
}

// Close stops the loop and closes the open stream. No message reaches the
// handler once Close returns.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.dispatchMu.Lock()
		c.closed = true
		c.dispatchMu.Unlock()

		c.mu.Lock()
		started := c.started
		cancel := c.cancel
		stream := c.stream
		c.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if stream != nil {
			stream.Close()
		}
		if started {
			<-c.done
		} else {
			close(c.done)
		}
		c.setState(StateClosed)
	})
}

func (c *Channel) isClosed() bool {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	return c.closed
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	if c.state == s || c.state == StateClosed || (c.state == StateFailed && s != StateClosed) {
		c.mu.Unlock()
		return
	}
	c.state = s
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()

	metrics.RealtimeState.Set(float64(s))
	logrus.Debugf("realtime channel %s", s)
	for _, fn := range observers {
		fn(s)
	}
}

func (c *Channel) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.ReconnectDelay
	b.MaxInterval = c.cfg.MaxReconnectDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)

	b := c.newBackOff()
	for {
		if ctx.Err() != nil || c.isClosed() {
			return
		}

		c.setState(StateConnecting)
		err := c.connectAndRead(ctx, b)
		if ctx.Err() != nil || c.isClosed() {
			return
		}

		c.mu.Lock()
		c.attempts++
		c.lastErr = err
		attempts := c.attempts
		c.mu.Unlock()

		if c.cfg.MaxReconnects > 0 && attempts > c.cfg.MaxReconnects {
			logrus.Errorf("realtime channel giving up after %d reconnect attempts: %v", c.cfg.MaxReconnects, err)
			c.mu.Lock()
			c.lastErr = errors.Join(ErrRetriesExhausted, err)
			c.mu.Unlock()
			c.setState(StateFailed)
			return
		}

		delay := b.NextBackOff()
		c.setState(StateDisconnected)
		logrus.Warnf("realtime channel disconnected: %v, reconnecting in %v (attempt %d)", err, delay, attempts)
		metrics.RealtimeReconnectsTotal.Inc()

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (c *Channel) connectAndRead(ctx context.Context, b backoff.BackOff) error {
	raw, err := c.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	stream := &onceStream{Stream: raw}

	c.mu.Lock()
	c.stream = stream
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.stream = nil
		c.mu.Unlock()
		stream.Close()
	}()

	if c.isClosed() {
		return nil
	}

	c.mu.Lock()
	c.attempts = 0
	c.lastErr = nil
	c.mu.Unlock()
	b.Reset()
	c.setState(StateOpen)

	for {
		payload, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		if !c.dispatch(payload) {
			return nil
		}
	}
}

// dispatch hands payload to the handler unless the channel is closed.
func (c *Channel) dispatch(payload []byte) bool {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	if c.closed {
		return false
	}
	if c.handler != nil {
		c.handler(payload)
	}
	return true
}

// onceStream closes the wrapped stream at most once.
type onceStream struct {
	Stream
	once sync.Once
}

func (s *onceStream) Close() {
	s.once.Do(func() {
		if err := s.Stream.Close(); err != nil {
			logrus.Debugf("realtime stream close: %v", err)
		}
	})
}
