package dataurl

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	url := Encode("image/jpeg", payload)
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected prefix: %q", url[:30])
	}
	mime, data, err := Parse(url)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("mime = %q", mime)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("payload mismatch: %x", data)
	}
}

func TestParseRejectsNonDataURL(t *testing.T) {
	if _, _, err := Parse("https://example.com/logo.jpg"); err == nil {
		t.Fatal("expected error for non-data URL")
	}
}

func TestParseRejectsMissingSeparator(t *testing.T) {
	if _, _, err := Parse("data:image/jpeg;base64"); err == nil {
		t.Fatal("expected error for missing comma")
	}
}

func TestParseRejectsNonBase64Encoding(t *testing.T) {
	if _, _, err := Parse("data:text/plain,hello"); err == nil {
		t.Fatal("expected error for non-base64 payload")
	}
}

func TestParseRejectsCorruptPayload(t *testing.T) {
	if _, _, err := Parse("data:image/jpeg;base64,@@@@"); err == nil {
		t.Fatal("expected error for corrupt base64")
	}
}
