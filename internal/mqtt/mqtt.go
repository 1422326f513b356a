// Package mqtt pushes the on-air snapshot to listeners over an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

const (
	qos            = 1
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Broadcaster publishes retained snapshots on <prefix>/onair so a player
// that subscribes late still receives the current state.
type Broadcaster struct {
	client paho.Client
	topic  string
}

// Connect opens a client against brokerURL, reconnecting automatically.
func Connect(brokerURL, clientID, prefix string) (*Broadcaster, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(publishTimeout)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("broker", brokerURL).Msg("MQTT broker not reachable yet, retrying in background")
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return NewBroadcaster(client, prefix), nil
}

func NewBroadcaster(client paho.Client, prefix string) *Broadcaster {
	return &Broadcaster{client: client, topic: Topic(prefix)}
}

// Topic is where snapshots for prefix are published.
func Topic(prefix string) string {
	return prefix + "/onair"
}

func (b *Broadcaster) Topic() string { return b.topic }

// Publish sends snap as retained JSON and waits a bounded time for the ack.
func (b *Broadcaster) Publish(snap station.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	token := b.client.Publish(b.topic, qos, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out after %s", b.topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.topic, err)
	}
	log.Debug().Str("topic", b.topic).Int("bytes", len(payload)).Msg("snapshot published")
	return nil
}

// Close disconnects from the broker.
func (b *Broadcaster) Close() {
	if b.client.IsConnected() {
		b.client.Disconnect(disconnectWait)
		log.Info().Msg("MQTT client disconnected")
	}
}
