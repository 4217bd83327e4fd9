package responder_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeExclusivity(t *testing.T) {
	outcomes := map[string]responder.Outcome{
		"success":           responder.Succeeded("Hello"),
		"empty reply":       responder.Succeeded(""),
		"failure":           responder.Failed(errors.New("boom")),
		"tagged failure":    responder.Failed(responder.NewFailure(responder.KindAuth, errors.New("invalid key"))),
		"empty error text":  responder.Failed(errors.New("")),
		"nil error":         responder.Failed(nil),
		"zero value failed": {},
	}

	for name, o := range outcomes {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(o)
			require.NoError(t, err)

			var body map[string]string
			require.NoError(t, json.Unmarshal(b, &body))
			assert.Len(t, body, 1, "exactly one key in %s", b)

			if o.OK() {
				assert.Contains(t, body, "response")
				assert.Empty(t, o.ErrorMessage())
				assert.Nil(t, o.Failure())
			} else {
				assert.Contains(t, body, "error")
				assert.Empty(t, o.Reply())
			}
		})
	}
}

func TestFailedDescription(t *testing.T) {
	o := responder.Failed(responder.NewFailure(responder.KindAuth, errors.New("Incorrect API key provided")))

	assert.False(t, o.OK())
	assert.Equal(t, "Incorrect API key provided", o.ErrorMessage())
	assert.Equal(t, responder.KindAuth, o.Failure().Kind)

	o = responder.Failed(responder.NewFailure(responder.KindFormat, errors.New("")))
	assert.Equal(t, "format failure", o.ErrorMessage())
}

func TestOutcomeJSON(t *testing.T) {
	b, err := json.Marshal(responder.Succeeded("Hi! Your order #123 is on the way."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"response":"Hi! Your order #123 is on the way."}`, string(b))

	b, err = json.Marshal(responder.Failed(errors.New("connection refused")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"connection refused"}`, string(b))
}
