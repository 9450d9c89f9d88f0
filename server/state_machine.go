package server

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("server closed")

// serverState is a state in the server run-state machine.
type serverState uint32

const (
	// stateServing: requests are forwarded to the provider.
	stateServing serverState = iota
	// stateClosed: Close was called. Every request fails.
	stateClosed
)

func (s serverState) String() string {
	switch s {
	case stateServing:
		return "Serving"
	case stateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// runGuard tracks whether the server still accepts requests and how
// many are in flight.
type runGuard struct {
	state    atomic.Uint32
	inFlight atomic.Int64
}

// acquire admits one request. The caller must call release when
// acquire succeeds.
func (g *runGuard) acquire() error {
	if serverState(g.state.Load()) == stateClosed {
		return ErrClosed
	}
	g.inFlight.Add(1)
	return nil
}

func (g *runGuard) release() {
	g.inFlight.Add(-1)
}

// close transitions Serving → Closed. It reports whether this call
// performed the transition.
func (g *runGuard) close() bool {
	return g.state.CompareAndSwap(uint32(stateServing), uint32(stateClosed))
}

func (g *runGuard) current() serverState {
	return serverState(g.state.Load())
}
