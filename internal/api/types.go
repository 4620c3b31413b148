package api

import (
	"bytes"
	"encoding/json"
)

// SessionID is the server-assigned session identifier. The backend sends it
// as a JSON number; strings are accepted too and kept verbatim.
type SessionID string

// UnmarshalJSON accepts a JSON number or string.
func (id *SessionID) UnmarshalJSON(data []byte) error {
	s, err := rawScalar(data)
	if err != nil {
		return err
	}
	*id = SessionID(s)
	return nil
}

// Amount is a balance value exactly as the server formatted it.
// It is never parsed to float for storage.
type Amount string

// UnmarshalJSON accepts a JSON string or number without reformatting it.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s, err := rawScalar(data)
	if err != nil {
		return err
	}
	*a = Amount(s)
	return nil
}

// String returns the amount text.
func (a Amount) String() string {
	return string(a)
}

// rawScalar returns the text of a JSON string or the literal of a JSON number.
// null yields an empty string.
func rawScalar(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return "", nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// StartResponse is the body of GET /game/start.
type StartResponse struct {
	SessionID SessionID `json:"session_id"`
	WinNext   bool      `json:"win_next"`
	Eggs      *Amount   `json:"eggs,omitempty"`
	USDT      *Amount   `json:"usdt,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// CheckResponse is the body of GET /game/check for both coin and end actions.
type CheckResponse struct {
	Eggs      *Amount    `json:"eggs,omitempty"`
	USDT      *Amount    `json:"usdt,omitempty"`
	SessionID *SessionID `json:"session_id,omitempty"`
	WinNext   *bool      `json:"win_next,omitempty"`
	Status    string     `json:"status,omitempty"`
	OK        *bool      `json:"ok,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// Action is the check endpoint's action parameter.
type Action string

const (
	ActionCoin Action = "coin"
	ActionEnd  Action = "end"
)

// AmountPtr is a helper for building responses.
func AmountPtr(s string) *Amount {
	a := Amount(s)
	return &a
}
