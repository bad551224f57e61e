// Package notify announces prayer arrivals to other devices.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Arrival describes a prayer whose countdown reached zero.
type Arrival struct {
	ID     string    `json:"id"`
	Prayer string    `json:"prayer"`
	Label  string    `json:"label"`
	Time   string    `json:"time"`
	At     time.Time `json:"at"`
	Place  string    `json:"place,omitempty"`
}

// NewArrival stamps an arrival with a fresh message ID.
func NewArrival(prayerKey, label, timeStr, place string, at time.Time) Arrival {
	return Arrival{
		ID:     uuid.NewString(),
		Prayer: prayerKey,
		Label:  label,
		Time:   timeStr,
		At:     at,
		Place:  place,
	}
}

// Notifier publishes arrival events.
type Notifier interface {
	Notify(ctx context.Context, a Arrival) error
	Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, Arrival) error { return nil }
func (Nop) Close()                                {}

// MQTT publishes arrivals as JSON to a broker topic.
type MQTT struct {
	client mqtt.Client
	topic  string
	log    zerolog.Logger
}

// DialMQTT connects to broker (e.g. "tcp://localhost:1883") and returns a
// notifier that publishes to topic.
func DialMQTT(broker, topic string, log zerolog.Logger) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID("adhan-clock-" + uuid.NewString()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", broker).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", broker).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", broker, token.Error())
	}

	return &MQTT{client: client, topic: topic, log: log}, nil
}

// Notify publishes a with QoS 1. It gives up when ctx is done.
func (m *MQTT) Notify(ctx context.Context, a Arrival) error {
	payload, err := Encode(a)
	if err != nil {
		return err
	}

	token := m.client.Publish(m.topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing arrival to %s: %w", m.topic, err)
	}

	m.log.Debug().Str("topic", m.topic).Str("prayer", a.Prayer).Msg("arrival published")
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}

// Encode renders an arrival as the JSON message body.
func Encode(a Arrival) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal arrival: %w", err)
	}
	return data, nil
}
