package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intentSucceeded struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

func TestCloudEvent_EnvelopeRoundTrip(t *testing.T) {
	ce, err := NewCloudEvent("service-payment", "payment.intent.succeeded", intentSucceeded{PaymentIntentID: "pi_123"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)
	assert.Equal(t, "payment.intent.succeeded", parsed.Type)

	var data intentSucceeded
	require.NoError(t, parsed.ParseData(&data))
	assert.Equal(t, "pi_123", data.PaymentIntentID)
}

func TestParseCloudEvent_RejectsGarbage(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = ParseCloudEvent([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}
