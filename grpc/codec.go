// Package execgrpc provides the gRPC transport for execution outcomes,
// using cramberry for deterministic binary serialization.
//
// No protobuf code generation is required. Views from
// execution/types are serialized directly via cramberry struct tags.
package execgrpc

import (
	"google.golang.org/grpc/encoding"

	"github.com/blockberries/execution/codec"
)

// CramberryCodec implements grpc/encoding.Codec on top of codec.Binary.
type CramberryCodec struct{}

func (CramberryCodec) Marshal(v any) ([]byte, error) {
	return codec.Binary.Marshal(v)
}

func (CramberryCodec) Unmarshal(data []byte, v any) error {
	return codec.Binary.Unmarshal(data, v)
}

func (CramberryCodec) Name() string { return codec.Binary.Name() }

func init() {
	encoding.RegisterCodec(CramberryCodec{})
}
