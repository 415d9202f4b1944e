package dataset

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// wirePayload is the JSON object form of a payload.
type wirePayload struct {
	Values  json.RawMessage `json:"values"`
	Labels  json.RawMessage `json:"labels"`
	Dataset []Record        `json:"dataset"`
}

// DecodePayload parses a JSON payload. Accepted forms are a bare number, an
// array of records, {"dataset": [...]}, and {"values": ..., "labels": ...}
// where values is a number or an array and labels a string or an array.
func DecodePayload(data []byte) (Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrNoData
	}

	switch data[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}
		return RecordArray(records), nil
	case '{':
		var w wirePayload
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		return w.payload()
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding scalar: %w", err)
		}
		return Scalar{Value: v}, nil
	}
}

func (w wirePayload) payload() (Payload, error) {
	if len(w.Dataset) > 0 {
		return RecordArray(w.Dataset), nil
	}
	values := bytes.TrimSpace(w.Values)
	if isAbsent(values) {
		return nil, ErrNoData
	}

	labels, err := decodeLabels(w.Labels)
	if err != nil {
		return nil, err
	}

	if values[0] == '[' {
		var vs []float64
		if err := json.Unmarshal(values, &vs); err != nil {
			return nil, fmt.Errorf("decoding values: %w", err)
		}
		return ParallelArrays{Values: vs, Labels: labels}, nil
	}

	var v float64
	if err := json.Unmarshal(values, &v); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	s := Scalar{Value: v}
	if len(labels) > 0 {
		s.Label = labels[0]
	}
	return s, nil
}

func decodeLabels(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding label: %w", err)
		}
		return []string{s}, nil
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("decoding labels: %w", err)
	}
	return labels, nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
