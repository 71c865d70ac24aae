package loomclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/loomlane/loomclient/gateway"
)

const genericErrorMessage = "Something went wrong"

// ErrorMessage applies the uniform extraction policy for server failures:
// response-body "message", then "detail", then the first field error's first
// array/string value in document order, then the transport-level message,
// else a generic fallback. Every account operation and recovery step stores
// the result of this function, nothing else.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		if msg := messageFromBody(apiErr.Body); msg != "" {
			return msg
		}
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return genericErrorMessage
}

// messageFromBody walks the response payload. Keys are visited in document
// order via the JSON token stream: Go maps would make "first field error"
// nondeterministic.
func messageFromBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	// A plain JSON string body is the message itself.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}

	if trimmed[0] != '{' {
		// Non-JSON error pages (proxies, HTML) are not messages.
		return ""
	}

	keys, values, err := decodeOrderedObject(trimmed)
	if err != nil {
		return ""
	}

	for _, preferred := range []string{"message", "detail"} {
		for i, key := range keys {
			if key == preferred {
				if s := stringValue(values[i]); s != "" {
					return s
				}
			}
		}
	}
	for i := range keys {
		if s := fieldErrorValue(values[i]); s != "" {
			return s
		}
	}
	return ""
}

func decodeOrderedObject(data []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // consume '{'
		return nil, nil, err
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.New("unexpected token in object")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, raw)
	}
	return keys, values, nil
}

func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func fieldErrorValue(raw json.RawMessage) string {
	if s := stringValue(raw); s != "" {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return ""
	}
	return stringValue(list[0])
}
