package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SessionStatus represents where an invoice session is in its checkout lifecycle
type SessionStatus int

const (
	SessionEditing    SessionStatus = 0
	SessionSubmitting SessionStatus = 1
	SessionClearing   SessionStatus = 2
	SessionCommitted  SessionStatus = 3
)

func (s SessionStatus) String() string {
	switch s {
	case SessionEditing:
		return "Editing"
	case SessionSubmitting:
		return "Submitting"
	case SessionClearing:
		return "Clearing"
	case SessionCommitted:
		return "Committed"
	}
	return "Unknown"
}

func (s SessionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SessionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SessionStatus(i)
		return nil
	}
	switch str {
	case "Editing":
		*s = SessionEditing
	case "Submitting":
		*s = SessionSubmitting
	case "Clearing":
		*s = SessionClearing
	case "Committed":
		*s = SessionCommitted
	}
	return nil
}

// CheckoutOutcome is the terminal result of one checkout attempt.
type CheckoutOutcome int

const (
	CheckoutCommitted CheckoutOutcome = 0
	CheckoutRejected  CheckoutOutcome = 1
)

func (o CheckoutOutcome) String() string {
	return [...]string{"Committed", "Rejected"}[o]
}

func (o CheckoutOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o CheckoutOutcome) Value() (driver.Value, error) {
	return int64(o), nil
}

func (o *CheckoutOutcome) Scan(value interface{}) error {
	if value == nil {
		*o = CheckoutCommitted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*o = CheckoutOutcome(v)
	case int:
		*o = CheckoutOutcome(v)
	}
	return nil
}
