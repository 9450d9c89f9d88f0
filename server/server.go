// Package server provides the provider-side wrapper that validates
// protocol views before they are handed to a transport and logs every
// request.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/internal/logging"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ execution.Provider = (*Server)(nil)

// Server wraps a Provider. Transports serve views exclusively through
// it, so no malformed view ever reaches the classification layer.
type Server struct {
	provider execution.Provider
	guard    runGuard
	logger   zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a new Server wrapping the given provider.
func New(provider execution.Provider, opts ...Option) *Server {
	s := &Server{
		provider: provider,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FinalOutcome fetches and validates the final outcome of a
// transaction. Safe for concurrent use.
func (s *Server) FinalOutcome(ctx context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
	if err := s.guard.acquire(); err != nil {
		return types.FinalExecutionOutcomeView{}, err
	}
	defer s.guard.release()

	start := time.Now()
	view, err := s.provider.FinalOutcome(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Stringer(logging.FieldTxHash, req.TxHash).
			Str(logging.FieldSender, string(req.SenderID)).
			Msg("final outcome request failed")
		return types.FinalExecutionOutcomeView{}, fmt.Errorf("final outcome of %s: %w", req.TxHash, err)
	}
	if err := view.Validate(); err != nil {
		s.logger.Error().Err(err).
			Stringer(logging.FieldTxHash, req.TxHash).
			Msg("provider returned an invalid view")
		return types.FinalExecutionOutcomeView{}, fmt.Errorf("final outcome of %s: %w", req.TxHash, err)
	}

	gas := view.TransactionOutcome.Outcome.GasBurnt
	for _, r := range view.ReceiptsOutcome {
		gas += r.Outcome.GasBurnt
	}
	s.logger.Debug().
		Stringer(logging.FieldTxHash, req.TxHash).
		Stringer(logging.FieldStatus, view.Status.Kind).
		Uint64(logging.FieldGasBurnt, uint64(gas)).
		Int(logging.FieldReceipts, len(view.ReceiptsOutcome)).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("served final outcome")
	return view, nil
}

// CallFunction runs a read-only function. Safe for concurrent use.
func (s *Server) CallFunction(ctx context.Context, req types.ViewRequest) (types.CallResult, error) {
	if err := s.guard.acquire(); err != nil {
		return types.CallResult{}, err
	}
	defer s.guard.release()

	if err := req.ContractID.Validate(); err != nil {
		return types.CallResult{}, fmt.Errorf("view %s: %w", req.MethodName, err)
	}
	if req.MethodName == "" {
		return types.CallResult{}, fmt.Errorf("view on %s: empty method name", req.ContractID)
	}

	start := time.Now()
	result, err := s.provider.CallFunction(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str(logging.FieldContract, string(req.ContractID)).
			Str(logging.FieldMethod, req.MethodName).
			Msg("view call failed")
		return types.CallResult{}, fmt.Errorf("view %s.%s: %w", req.ContractID, req.MethodName, err)
	}
	s.logger.Debug().
		Str(logging.FieldContract, string(req.ContractID)).
		Str(logging.FieldMethod, req.MethodName).
		Int("resultBytes", len(result.Result)).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("served view call")
	return result, nil
}

// InFlight returns the number of requests currently being served.
func (s *Server) InFlight() int64 {
	return s.guard.inFlight.Load()
}

// State returns the run state, "Serving" or "Closed".
func (s *Server) State() string {
	return s.guard.current().String()
}

// Close stops accepting requests. Calls already in flight complete.
func (s *Server) Close() error {
	if s.guard.close() {
		s.logger.Info().Msg("server closed")
	}
	return nil
}
