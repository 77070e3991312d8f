package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotArray means the dataset document is valid JSON but not a list
var ErrNotArray = errors.New("dataset is not a JSON array")

// DecodeDataset splits a dataset document into its raw records, in order
func DecodeDataset(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode dataset: %w (found %s)", ErrNotArray, typeErr.Value)
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("decode dataset: %w (found null)", ErrNotArray)
	}
	return records, nil
}
