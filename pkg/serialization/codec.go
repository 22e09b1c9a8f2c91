// Package serialization provides codecs, compression and encryption for
// graph declaration documents
// PRINCIPLES:
// - KISS: One small Codec interface, several implementations
// - DRY: Reusable by registries, the CLI and the server
package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates a document format no codec handles
var ErrUnknownFormat = errors.New("unknown document format")

// Codec encodes and decodes graph documents
// PRINCIPLES:
// - ISP: Simple interface with ≤3 methods
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// JSONCodec carries documents as JSON
type JSONCodec struct{}

// NewJSONCodec creates a JSON codec
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (c *JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (c *JSONCodec) Name() string { return "json" }

// YAMLCodec carries documents as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a YAML codec
func NewYAMLCodec() *YAMLCodec { return &YAMLCodec{} }

func (c *YAMLCodec) Encode(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (c *YAMLCodec) Decode(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

func (c *YAMLCodec) Name() string { return "yaml" }

// MsgpackCodec carries documents as MessagePack. Struct fields travel
// under their json tag names so the three codecs agree on the wire
// vocabulary.
type MsgpackCodec struct{}

// NewMsgpackCodec creates a MessagePack codec
func NewMsgpackCodec() *MsgpackCodec { return &MsgpackCodec{} }

func (c *MsgpackCodec) Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *MsgpackCodec) Decode(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func (c *MsgpackCodec) Name() string { return "msgpack" }

// CodecByName resolves a codec by its Name
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "msgpack":
		return NewMsgpackCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// CodecForPath resolves a codec from a file extension
func CodecForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	case ".msgpack", ".mp":
		return NewMsgpackCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}
