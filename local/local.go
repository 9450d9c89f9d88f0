// Package local provides an in-process execution connection.
//
// For providers compiled into the same binary as their caller, this
// adapter wraps the provider with view validation and classifies the
// results, with no serialization overhead.
package local

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/server"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ execution.Connection = (*Connection)(nil)

// Connection wraps a local Provider.
type Connection struct {
	srv    *server.Server
	logger zerolog.Logger
}

// Option configures a Connection.
type Option func(*Connection)

// WithLogger sets the logger of the connection and of the server it
// wraps.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Connection) { c.logger = logger }
}

// NewConnection creates an in-process connection wrapping the given
// provider.
func NewConnection(p execution.Provider, opts ...Option) *Connection {
	c := &Connection{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.srv = server.New(p, server.WithLogger(c.logger))
	return c
}

func (c *Connection) TxStatus(ctx context.Context, req types.TxStatusRequest) (*execution.FinalResult, error) {
	view, err := c.srv.FinalOutcome(ctx, req)
	if err != nil {
		return nil, err
	}
	result := execution.NewFinalResult(view)
	c.logger.Debug().Object("result", result).Msg("tx status")
	return result, nil
}

func (c *Connection) View(ctx context.Context, req types.ViewRequest) (*execution.ViewResult, error) {
	result, err := c.srv.CallFunction(ctx, req)
	if err != nil {
		return nil, err
	}
	return execution.NewViewResult(result), nil
}

func (c *Connection) Close() error { return c.srv.Close() }

// Server returns the underlying server for advanced use.
func (c *Connection) Server() *server.Server {
	return c.srv
}
