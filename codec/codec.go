// Package codec provides the two interchangeable payload encodings a
// contract result can be decoded with: self-describing JSON text and
// compact, schema-driven cramberry binary.
//
// Both codecs also satisfy google.golang.org/grpc/encoding.Codec, so
// the binary one doubles as the transport codec.
package codec

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	jsoniter "github.com/json-iterator/go"
)

// Codec marshals and unmarshals payloads in one format.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var (
	// JSON decodes self-describing JSON text.
	JSON Codec = jsonCodec{}
	// Binary decodes deterministic cramberry binary. Target types
	// declare their schema with `cramberry:"N"` struct tags.
	Binary Codec = binaryCodec{}
)

const (
	jsonName   = "json"
	binaryName = "cramberry"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := jsonAPI.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := jsonAPI.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return jsonName }

type binaryCodec struct{}

func (binaryCodec) Marshal(v any) ([]byte, error) {
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (binaryCodec) Unmarshal(data []byte, v any) error {
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cramberry unmarshal: %w", err)
	}
	return nil
}

func (binaryCodec) Name() string { return binaryName }

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	switch name {
	case jsonName:
		return JSON, true
	case binaryName, "binary":
		return Binary, true
	default:
		return nil, false
	}
}
