package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArrival(t *testing.T) {
	at := time.Date(2026, 10, 17, 17, 45, 0, 0, time.UTC)
	a := NewArrival("maghrib", "Maghrib", "5:45 PM", "Makkah", at)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err, "arrival ID should be a UUID")
	assert.Equal(t, "maghrib", a.Prayer)
	assert.Equal(t, at, a.At)

	other := NewArrival("maghrib", "Maghrib", "5:45 PM", "Makkah", at)
	assert.NotEqual(t, a.ID, other.ID)
}

func TestEncode(t *testing.T) {
	at := time.Date(2026, 10, 17, 4, 52, 0, 0, time.UTC)
	a := Arrival{ID: "x", Prayer: "fajr", Label: "الفجر", Time: "4:52 ص", At: at}

	data, err := Encode(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "fajr", got["prayer"])
	assert.Equal(t, "الفجر", got["label"])
	assert.Equal(t, "2026-10-17T04:52:00Z", got["at"])
	assert.NotContains(t, got, "place")
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Notify(context.Background(), Arrival{}))
	n.Close()
}

func TestDialMQTT_Unreachable(t *testing.T) {
	_, err := DialMQTT("tcp://127.0.0.1:1", "adhan/arrival", zerolog.Nop())
	assert.Error(t, err)
}
