// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package feed receives orientation samples over a websocket.
//
// A Client keeps a connection to a publisher, decodes every message into
// Euler angles and keeps only the most recent sample. The render loop
// polls Latest once per frame; it never blocks on the network.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/attitude"
)

// DefaultReconnectDelay is the pause between connection attempts.
const DefaultReconnectDelay = 2 * time.Second

// Sample is a decoded orientation.
type Sample struct {
	Attitude attitude.Euler
	Frame    string
	Stamp    time.Time
	Received time.Time
}

// Client subscribes to an orientation feed.
//
// Latest is safe to call from any goroutine while Run is active.
type Client struct {
	url    string
	dialer *websocket.Dialer
	delay  time.Duration

	latest   atomic.Pointer[Sample]
	received atomic.Uint64
	dropped  atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithDialer sets the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithReconnectDelay sets the pause between connection attempts. Zero or
// negative values keep the default.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.delay = d
		}
	}
}

// NewClient creates a client for the ws:// or wss:// url. Nothing is
// dialed until Run.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		dialer: websocket.DefaultDialer,
		delay:  DefaultReconnectDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run connects and reads until ctx is done, reconnecting after every
// failure. It returns ctx.Err().
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if IsClosed(err) {
			gghud.Logger().Info("feed: publisher closed the connection", "url", c.url, "retry", c.delay)
		} else {
			gghud.Logger().Warn("feed: connection lost", "url", c.url, "err", err, "retry", c.delay)
		}

		t := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// session dials once and reads until the connection fails or ctx is done.
func (c *Client) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("feed: dial %s: %w", c.url, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	gghud.Logger().Info("feed: connected", "url", c.url)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("feed: read: %w", err)
		}
		if err := c.handle(data); err != nil {
			c.dropped.Add(1)
			gghud.Logger().Debug("feed: message dropped", "err", err)
		}
	}
}

// handle decodes one payload and publishes it.
func (c *Client) handle(data []byte) error {
	m, err := Decode(data)
	if err != nil {
		return err
	}
	c.latest.Store(&Sample{
		Attitude: m.Euler(),
		Frame:    m.Frame,
		Stamp:    m.Time(),
		Received: time.Now(),
	})
	c.received.Add(1)
	return nil
}

// Latest returns the most recent sample, or false before the first one.
func (c *Client) Latest() (Sample, bool) {
	s := c.latest.Load()
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}

// Stats returns the number of accepted and dropped messages.
func (c *Client) Stats() (received, dropped uint64) {
	return c.received.Load(), c.dropped.Load()
}

// IsClosed reports whether err is an orderly websocket close.
func IsClosed(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) && ce.Code == websocket.CloseNormalClosure
}
