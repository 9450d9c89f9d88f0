package execgrpc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/internal/logging"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ execution.Connection = (*Client)(nil)

// Client implements execution.Connection for a remote provider over
// gRPC using cramberry serialization.
type Client struct {
	cc     *grpc.ClientConn
	logger zerolog.Logger
}

type clientConfig struct {
	dialOpts []grpc.DialOption
	logger   zerolog.Logger
}

// ClientOption configures Dial.
type ClientOption func(*clientConfig)

// WithDialOptions appends gRPC dial options, typically transport
// credentials.
func WithDialOptions(opts ...grpc.DialOption) ClientOption {
	return func(c *clientConfig) { c.dialOpts = append(c.dialOpts, opts...) }
}

// WithClientLogger sets the client logger. The default discards
// everything.
func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *clientConfig) { c.logger = logger }
}

// Dial connects to a remote outcome service.
func Dial(ctx context.Context, addr string, opts ...ClientOption) (*Client, error) {
	cfg := clientConfig{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	dialOpts := append(cfg.dialOpts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("execution client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc, logger: cfg.logger}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// FinalOutcome returns the raw view of a transaction.
func (c *Client) FinalOutcome(ctx context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
	resp := new(types.FinalExecutionOutcomeView)
	if err := c.cc.Invoke(ctx, fullMethod("FinalOutcome"), &req, resp); err != nil {
		logStatus(c.logger, "FinalOutcome", err)
		return types.FinalExecutionOutcomeView{}, err
	}
	return *resp, nil
}

// CallFunction returns the raw result of a view call.
func (c *Client) CallFunction(ctx context.Context, req types.ViewRequest) (types.CallResult, error) {
	resp := new(types.CallResult)
	if err := c.cc.Invoke(ctx, fullMethod("CallFunction"), &req, resp); err != nil {
		logStatus(c.logger, "CallFunction", err)
		return types.CallResult{}, err
	}
	return *resp, nil
}

func (c *Client) TxStatus(ctx context.Context, req types.TxStatusRequest) (*execution.FinalResult, error) {
	view, err := c.FinalOutcome(ctx, req)
	if err != nil {
		return nil, err
	}
	result := execution.NewFinalResult(view)
	c.logger.Debug().Object("result", result).Msg("tx status")
	return result, nil
}

func (c *Client) View(ctx context.Context, req types.ViewRequest) (*execution.ViewResult, error) {
	result, err := c.CallFunction(ctx, req)
	if err != nil {
		return nil, err
	}
	return execution.NewViewResult(result), nil
}

// TxStatuses fetches several transactions over one stream. Results
// are returned in request order.
func (c *Client) TxStatuses(ctx context.Context, reqs []types.TxStatusRequest) ([]*execution.FinalResult, error) {
	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{
		StreamName:    "FinalOutcomes",
		ServerStreams: true,
	}, fullMethod("FinalOutcomes"))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&TxStatusBatchRequest{Requests: reqs}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}

	results := make([]*execution.FinalResult, 0, len(reqs))
	for {
		view := new(types.FinalExecutionOutcomeView)
		if err := stream.RecvMsg(view); err != nil {
			if errors.Is(err, io.EOF) {
				return results, nil
			}
			logStatus(c.logger, "FinalOutcomes", err)
			return nil, err
		}
		results = append(results, execution.NewFinalResult(*view))
	}
}
