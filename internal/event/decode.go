package event

import "encoding/json"

// DecodePayload extracts a typed payload from an event. In-process
// publishes carry the concrete struct, so the type assertion hits first.
// Payloads replayed from the dead-letter file arrive as generic maps and
// take the JSON round-trip instead.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
