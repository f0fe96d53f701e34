package model

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeItems writes items as a JSON array.
func EncodeItems(w io.Writer, items []EquipmentItem) error {
	if err := json.NewEncoder(w).Encode(items); err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	return nil
}

// DecodeItems reads a JSON array written by EncodeItems.
func DecodeItems(r io.Reader) ([]EquipmentItem, error) {
	var items []EquipmentItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

// MarshalCanonical returns a stable JSON encoding of v. Map keys are sorted,
// so equal values always produce equal bytes.
func MarshalCanonical(v any) ([]byte, error) {
	return canonical.Marshal(v)
}

var canonical = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()
