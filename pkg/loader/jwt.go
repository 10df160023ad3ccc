package loader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oakwood-commons/vardump/internal/value"
)

// IsJWT reports whether input looks like a JWT: three non-empty base64url
// parts, the first two being JSON objects. A "Bearer " prefix is ignored.
func IsJWT(input string) bool {
	parts, ok := jwtParts(input)
	if !ok {
		return false
	}
	for _, part := range parts[:2] {
		decoded, err := base64.RawURLEncoding.DecodeString(part)
		if err != nil {
			return false
		}
		var obj map[string]any
		if err := json.Unmarshal(decoded, &obj); err != nil {
			return false
		}
	}
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

func jwtParts(input string) ([]string, bool) {
	input = strings.TrimSpace(strings.TrimPrefix(input, "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, false
	}
	for _, part := range parts {
		if part == "" {
			return nil, false
		}
	}
	return parts, true
}

// DecodeJWT decodes a token into header, payload and signature entries. The
// signature stays base64url text. Claims keep their token order.
func DecodeJWT(input string, opts ...Option) (any, error) {
	return decodeJWT(input, newOptions(opts).mode)
}

func decodeJWT(input string, mode Mode) (any, error) {
	parts, ok := jwtParts(input)
	if !ok {
		return nil, fmt.Errorf("invalid JWT: expected 3 non-empty parts")
	}
	header, err := jwtSegment(parts[0], "header", mode)
	if err != nil {
		return nil, err
	}
	payload, err := jwtSegment(parts[1], "payload", mode)
	if err != nil {
		return nil, err
	}
	if mode == Plain {
		return map[string]any{"header": header, "payload": payload, "signature": parts[2]}, nil
	}
	m := value.NewOrderedMap(3)
	m.Set(value.StringKey("header"), header)
	m.Set(value.StringKey("payload"), payload)
	m.Set(value.StringKey("signature"), parts[2])
	return m, nil
}

func jwtSegment(part, name string, mode Mode) (any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT %s: %w", name, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JWT %s JSON", name)
	}
	// JSON is valid YAML, and the YAML walk keeps claim order.
	doc, err := loadYAML(string(raw), mode)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT %s: %w", name, err)
	}
	return doc, nil
}
