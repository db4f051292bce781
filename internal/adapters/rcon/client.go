package rcon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorcon/rcon"
)

var ErrClosed = errors.New("rcon client closed")

type conn interface {
	Execute(command string) (string, error)
	Close() error
}

type dialFunc func(address, password string, timeout time.Duration) (conn, error)

func dialRCON(address, password string, timeout time.Duration) (conn, error) {
	return rcon.Dial(address, password,
		rcon.SetDialTimeout(timeout),
		rcon.SetDeadline(timeout),
	)
}

// Client executes console commands over one RCON connection. The connection
// is opened on first use and dropped after any failed exchange, so the next
// command redials.
type Client struct {
	address  string
	password string
	timeout  time.Duration
	dial     dialFunc

	mu     sync.Mutex
	conn   conn
	closed bool
}

func NewClient(address, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		address:  address,
		password: password,
		timeout:  timeout,
		dial:     dialRCON,
	}
}

func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if c.conn == nil {
		nc, err := c.dial(c.address, c.password, c.timeout)
		if err != nil {
			return "", fmt.Errorf("dial rcon %s: %w", c.address, err)
		}
		slog.Info("Connected to RCON", "address", c.address)
		c.conn = nc
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	current := c.conn
	go func() {
		out, err := current.Execute(command)
		done <- result{out, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			c.drop()
			return "", fmt.Errorf("execute %q: %w", command, r.err)
		}
		return r.out, nil
	case <-ctx.Done():
		// closing unblocks the pending exchange
		c.drop()
		<-done
		return "", ctx.Err()
	}
}

func (c *Client) drop() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		slog.Debug("Error closing RCON connection", "error", err)
	}
	c.conn = nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
