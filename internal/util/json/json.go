// Package json is the JSON codec used across the module. It wraps sonic
// with a frozen configuration so output is stable between runs.
package json

import (
	"github.com/bytedance/sonic"
)

// API is the shared sonic configuration
var API = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      true,
	CompactMarshaler: true,
	ValidateString:   true,
}.Froze()

// Marshal encodes v
func Marshal(v any) ([]byte, error) {
	return API.Marshal(v)
}

// MarshalString encodes v as a string
func MarshalString(v any) (string, error) {
	return API.MarshalToString(v)
}

// MarshalIndent encodes v with indentation
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return API.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v
func Unmarshal(data []byte, v any) error {
	return API.Unmarshal(data, v)
}
