package cartgateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/motocart/lib/myerrors"
)

// responses are wrapped in {"data": ...}, sometimes twice
const maxEnvelopeDepth = 2

var null = []byte("null")

// decodeEnvelope unwraps the data envelopes around a payload and decodes it into target.
// It reports false when the server sent no payload at all.
func decodeEnvelope(body []byte, target any) (bool, error) {
	payload := bytes.TrimSpace(body)

	for depth := 0; depth < maxEnvelopeDepth; depth++ {
		if len(payload) == 0 || bytes.Equal(payload, null) {
			return false, nil
		}

		var probe map[string]json.RawMessage
		err := json.Unmarshal(payload, &probe)
		if err != nil {
			return false, myerrors.NewGatewayError(0, fmt.Errorf("invalid response from cart service: %w", err))
		}

		inner, wrapped := probe["data"]
		if !wrapped {
			break
		}
		payload = bytes.TrimSpace(inner)
	}

	if len(payload) == 0 || bytes.Equal(payload, null) {
		return false, nil
	}

	err := json.Unmarshal(payload, target)
	if err != nil {
		return false, myerrors.NewGatewayError(0, fmt.Errorf("invalid response from cart service: %w", err))
	}

	return true, nil
}

type errorBody struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Error   string `json:"error"`
}

// errorMessage digs the human readable reason out of an error response.
func errorMessage(body []byte) string {
	payload := bytes.TrimSpace(body)
	if len(payload) == 0 {
		return ""
	}

	if payload[0] == '"' {
		var s string
		if json.Unmarshal(payload, &s) == nil {
			return s
		}
	}

	candidates := []errorBody{}

	var plain errorBody
	if json.Unmarshal(payload, &plain) == nil {
		candidates = append(candidates, plain)
	}
	var wrapped struct {
		Data errorBody `json:"data"`
	}
	if json.Unmarshal(payload, &wrapped) == nil {
		candidates = append(candidates, wrapped.Data)
	}

	for _, c := range candidates {
		for _, msg := range []string{c.Message, c.Title, c.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return ""
}
