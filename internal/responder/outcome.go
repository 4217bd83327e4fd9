package responder

import (
	"encoding/json"
)

// Outcome is the normalized result of a generation: either a reply or an
// error description, never both. Build it with Succeeded or Failed.
type Outcome struct {
	ok      bool
	reply   string
	message string
	failure *Failure
}

// Succeeded wraps a generated reply.
func Succeeded(reply string) Outcome {
	return Outcome{ok: true, reply: reply}
}

// Failed wraps err as an error outcome. The description is never empty.
func Failed(err error) Outcome {
	f := AsFailure(err)
	msg := f.Error()
	if msg == "" {
		msg = string(f.Kind) + " failure"
	}
	return Outcome{message: msg, failure: f}
}

// OK reports whether the outcome carries a reply.
func (o Outcome) OK() bool { return o.ok }

// Reply returns the generated reply, empty on failure.
func (o Outcome) Reply() string { return o.reply }

// ErrorMessage returns the failure description, empty on success.
func (o Outcome) ErrorMessage() string { return o.message }

// Failure returns the classified failure, nil on success.
func (o Outcome) Failure() *Failure { return o.failure }

type outcomeJSON struct {
	Response *string `json:"response,omitempty"`
	Error    *string `json:"error,omitempty"`
}

// MarshalJSON encodes {"response": ...} or {"error": ...}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.ok {
		return json.Marshal(outcomeJSON{Response: &o.reply})
	}
	return json.Marshal(outcomeJSON{Error: &o.message})
}
