// Package logo turns uploaded logo files into self-contained data URIs.
package logo

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes caps uploads when no explicit limit is configured.
const DefaultMaxBytes int64 = 2 << 20

// DataURI reads an image from r and returns it as data:<mime>;base64,<payload>.
// Non-image content is rejected with ErrNotImage, oversized input with ErrTooLarge.
func DataURI(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > maxBytes {
		return "", ErrTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}
	return Encode(data, mime.String()), nil
}

// Encode builds a base64 data URI. Parameters after ';' in mime are dropped.
func Encode(data []byte, mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether src is an inline data URI.
func IsDataURI(src string) bool {
	return strings.HasPrefix(strings.TrimSpace(src), "data:")
}

// Decode parses a base64 data URI produced by DataURI.
func Decode(uri string) ([]byte, string, error) {
	uri = strings.TrimSpace(uri)
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, mime, nil
}
