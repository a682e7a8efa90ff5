// Package dataurl encodes and decodes data: URLs (RFC 2397 shape) carrying
// base64 payloads. Logo input arrives in this form and finished documents
// leave in it.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const prefix = "data:"

// Encode wraps data in a data: URL with the given media type.
func Encode(mediaType string, data []byte) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(mediaType) + 8 + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(prefix)
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Parse splits a base64 data: URL into its media type and decoded payload.
func Parse(s string) (mediaType string, data []byte, err error) {
	if !strings.HasPrefix(s, prefix) {
		return "", nil, errors.New("missing data: prefix")
	}
	meta, payload, ok := strings.Cut(s[len(prefix):], ",")
	if !ok {
		return "", nil, errors.New("missing payload separator")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("unsupported encoding in %q", meta)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return mediaType, data, nil
}
