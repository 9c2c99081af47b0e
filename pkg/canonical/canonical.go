// Package canonical produces the stable-key JSON encoding used for request
// signing, local verification ids and audit hashes.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var (
	// structs are first flattened through this config so json tags are honoured
	// and numbers keep their textual form.
	generic = jsoniter.Config{
		UseNumber:              true,
		EscapeHTML:             false,
		ValidateJsonRawMessage: true,
	}.Froze()

	sorted = jsoniter.Config{
		SortMapKeys:            true,
		EscapeHTML:             false,
		ValidateJsonRawMessage: true,
	}.Froze()
)

// Marshal encodes v with every object's keys in lexical order, independent of
// struct field declaration order.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := generic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical: marshal: %w", err)
	}

	var tree interface{}
	if err := generic.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("canonical: decode: %w", err)
	}

	out, err := sorted.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("canonical: encode: %w", err)
	}
	return out, nil
}

// Digest is the hex SHA-256 of the canonical encoding of v.
func Digest(v interface{}) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
