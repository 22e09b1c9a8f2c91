// Package serialization provides the document pipeline for graph declarations
package serialization

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/flowspec/flowspec/internal/core/spec"
)

// CompressionType selects the compression applied after encoding
type CompressionType string

const (
	// CompressionNone stores documents uncompressed
	CompressionNone CompressionType = "none"
	// CompressionGzip compresses documents with gzip
	CompressionGzip CompressionType = "gzip"
	// CompressionZstd compresses documents with zstd
	CompressionZstd CompressionType = "zstd"
)

// ErrBadEncryptKey indicates an AES key of the wrong size
var ErrBadEncryptKey = errors.New("encrypt key must be 32 bytes")

// Options configures a Serializer
type Options struct {
	Codec       Codec
	Compression CompressionType
	EncryptKey  []byte // optional AES-256 key, 32 bytes
}

// Serializer runs the full document pipeline: encode, compress, encrypt
// on the way out and the reverse on the way in
// PRINCIPLES:
// - KISS: One pipeline, each stage optional
// - SRP: Owns byte-level document handling, nothing graph-structural
type Serializer struct {
	opts Options
}

// NewSerializer creates a serializer; a nil codec defaults to JSON.
func NewSerializer(opts Options) (*Serializer, error) {
	if opts.Codec == nil {
		opts.Codec = NewJSONCodec()
	}
	if opts.Compression == "" {
		opts.Compression = CompressionNone
	}
	if len(opts.EncryptKey) > 0 && len(opts.EncryptKey) != 32 {
		return nil, ErrBadEncryptKey
	}
	return &Serializer{opts: opts}, nil
}

// Default returns the plain JSON serializer.
func Default() *Serializer {
	s, _ := NewSerializer(Options{})
	return s
}

// CodecName reports the configured codec
func (s *Serializer) CodecName() string {
	return s.opts.Codec.Name()
}

// Marshal encodes, compresses and encrypts a value
func (s *Serializer) Marshal(v interface{}) ([]byte, error) {
	data, err := s.opts.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if len(s.opts.EncryptKey) > 0 {
		data, err = s.encrypt(data)
		if err != nil {
			return nil, fmt.Errorf("encrypt: %w", err)
		}
	}
	return data, nil
}

// Unmarshal reverses Marshal
func (s *Serializer) Unmarshal(data []byte, v interface{}) error {
	var err error
	if len(s.opts.EncryptKey) > 0 {
		data, err = s.decrypt(data)
		if err != nil {
			return fmt.Errorf("decrypt: %w", err)
		}
	}
	data, err = s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if err := s.opts.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// EncodeGraph marshals a graph declaration document.
func (s *Serializer) EncodeGraph(g *spec.GraphSpec) ([]byte, error) {
	if g == nil {
		return nil, spec.ErrNilGraphSpec
	}
	return s.Marshal(g)
}

// DecodeGraph unmarshals a graph declaration document. The result is
// not shape-checked; callers gate it before trusting Validate findings.
func (s *Serializer) DecodeGraph(data []byte) (*spec.GraphSpec, error) {
	var g spec.GraphSpec
	if err := s.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.opts.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.opts.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// encrypt seals data with AES-GCM, nonce prepended.
func (s *Serializer) encrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.opts.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Serializer) decrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.opts.EncryptKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
