// Package types defines the protocol-level views delivered by an RPC
// transport and the domain primitives they are built from.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization, plus JSON forms compatible with
// the NEAR JSON-RPC wire format. Nothing here classifies or decodes
// results; that happens in the execution package.
package types

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// Gas is an amount of gas burnt or attached.
type Gas uint64

// ErrInvalidView is wrapped by every view validation failure.
var ErrInvalidView = errors.New("invalid view")

var json = jsoniter.ConfigCompatibleWithStandardLibrary
