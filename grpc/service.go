package execgrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/blockberries/execution/types"
)

const serviceName = "github.com/blockberries/execution.v1.OutcomeService"

// OutcomeServiceServer is the server-side interface for the outcome
// gRPC service.
type OutcomeServiceServer interface {
	FinalOutcome(context.Context, *types.TxStatusRequest) (*types.FinalExecutionOutcomeView, error)
	CallFunction(context.Context, *types.ViewRequest) (*types.CallResult, error)
	FinalOutcomes(*TxStatusBatchRequest, grpc.ServerStream) error
}

// RegisterOutcomeServiceServer registers the OutcomeServiceServer on a
// gRPC server.
func RegisterOutcomeServiceServer(s *grpc.Server, srv OutcomeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerFinalOutcome(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.TxStatusRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OutcomeServiceServer).FinalOutcome(ctx, req)
}

func handlerCallFunction(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.ViewRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OutcomeServiceServer).CallFunction(ctx, req)
}

func handlerFinalOutcomes(srv any, stream grpc.ServerStream) error {
	req := new(TxStatusBatchRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(OutcomeServiceServer).FinalOutcomes(req, stream)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OutcomeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FinalOutcome", Handler: handlerFinalOutcome},
		{MethodName: "CallFunction", Handler: handlerCallFunction},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "FinalOutcomes",
			Handler:       handlerFinalOutcomes,
			ServerStreams: true,
		},
	},
	Metadata: "github.com/blockberries/execution/v1/outcome.cram",
}
