package execgrpc

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/server"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ OutcomeServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes a Provider as a gRPC service. Views travel as
// cramberry-encoded structs, without a conversion layer.
type GRPCServer struct {
	srv *server.Server
}

// NewGRPCServer creates a gRPC server wrapping the given provider.
func NewGRPCServer(p execution.Provider, opts ...server.Option) *GRPCServer {
	return &GRPCServer{
		srv: server.New(p, opts...),
	}
}

// Register adds the outcome service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterOutcomeServiceServer(gs, s)
}

// Serve starts a gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Stop closes the wrapped server and gracefully stops gs.
func (s *GRPCServer) Stop(gs *grpc.Server) {
	_ = s.srv.Close()
	gs.GracefulStop()
}

// Server returns the underlying server for advanced use.
func (s *GRPCServer) Server() *server.Server {
	return s.srv
}

func (s *GRPCServer) FinalOutcome(ctx context.Context, req *types.TxStatusRequest) (*types.FinalExecutionOutcomeView, error) {
	view, err := s.srv.FinalOutcome(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &view, nil
}

func (s *GRPCServer) CallFunction(ctx context.Context, req *types.ViewRequest) (*types.CallResult, error) {
	result, err := s.srv.CallFunction(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &result, nil
}

func (s *GRPCServer) FinalOutcomes(req *TxStatusBatchRequest, stream grpc.ServerStream) error {
	ctx := stream.Context()
	for _, r := range req.Requests {
		view, err := s.srv.FinalOutcome(ctx, r)
		if err != nil {
			return toStatus(err)
		}
		if err := stream.SendMsg(&view); err != nil {
			return err
		}
	}
	return nil
}

// toStatus maps server errors onto gRPC status codes so the client can
// tell a closed server from a malformed view.
func toStatus(err error) error {
	switch {
	case errors.Is(err, server.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, types.ErrInvalidView):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

// logStatus reports a failed call on the client side.
func logStatus(logger zerolog.Logger, method string, err error) {
	st, _ := status.FromError(err)
	logger.Warn().Str("method", method).Stringer("code", st.Code()).Msg(st.Message())
}
