package fire

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// CalculationResult is the service answer. A nil field means the service left
// it out.
type CalculationResult struct {
	SavingsPerYear         *float64 `json:"opsparing_ar"`
	NetResultAtTerminalAge *float64 `json:"result"`
}

func (r *CalculationResult) Complete() bool {
	return r != nil && r.SavingsPerYear != nil && r.NetResultAtTerminalAge != nil
}

// DecodeResult parses a service response body. null, non-object values and
// the empty object carry no information and yield a nil result. Malformed
// JSON and fields of the wrong type are errors.
func DecodeResult(body []byte) (*CalculationResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("response body is not valid json")
	}
	if trimmed[0] != '{' {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode response object: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	var res CalculationResult
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return nil, fmt.Errorf("decode calculation result: %w", err)
	}
	return &res, nil
}
