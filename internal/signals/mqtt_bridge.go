package signals

import (
	"errors"
	"sync/atomic"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/geobook/geobook/pkg/mqtt"
)

// MQTTBridge mirrors the saved-location signal to an MQTT broker so other
// devices sharing the broker refresh their lists too. Outbound messages
// carry this device's client id so its own broker echoes are discarded.
type MQTTBridge struct {
	bus      Bus
	client   mqtt.MQTTClient
	topic    string
	qos      int
	clientID string
	logger   zerolog.Logger

	sub     Subscription
	running bool
	// set while re-publishing an inbound broker signal locally, so the
	// local subscription does not forward it back out
	replaying atomic.Bool
}

// NewMQTTBridge wires bus and broker together on the given broker topic.
func NewMQTTBridge(bus Bus, client mqtt.MQTTClient, topic string, qos int, clientID string, logger zerolog.Logger) *MQTTBridge {
	return &MQTTBridge{
		bus:      bus,
		client:   client,
		topic:    topic,
		qos:      qos,
		clientID: clientID,
		logger:   logger,
	}
}

// Start subscribes both sides of the bridge.
func (b *MQTTBridge) Start() error {
	if b.running {
		return errors.New("mqtt bridge is already running")
	}

	b.sub = b.bus.Subscribe(TopicNewLocation, b.forward)

	token := b.client.Subscribe(b.topic, byte(b.qos), b.receive)
	if token.Wait() && token.Error() != nil {
		b.sub.Cancel()
		b.logger.Error().Err(token.Error()).Str("topic", b.topic).Msg("Failed to subscribe to broker topic")
		return token.Error()
	}

	b.running = true
	b.logger.Info().Str("topic", b.topic).Msg("MQTT signal bridge started")
	return nil
}

// Stop releases both subscriptions.
func (b *MQTTBridge) Stop() error {
	if !b.running {
		return errors.New("mqtt bridge is not running")
	}

	b.sub.Cancel()
	token := b.client.Unsubscribe(b.topic)
	if token.Wait() && token.Error() != nil {
		b.logger.Error().Err(token.Error()).Str("topic", b.topic).Msg("Failed to unsubscribe from broker topic")
		return token.Error()
	}

	b.running = false
	b.logger.Info().Msg("MQTT signal bridge stopped")
	return nil
}

// forward relays a locally published signal to the broker.
func (b *MQTTBridge) forward() {
	if b.replaying.Load() {
		return
	}

	token := b.client.Publish(b.topic, byte(b.qos), false, []byte(b.clientID))
	if token.Wait() && token.Error() != nil {
		b.logger.Error().Err(token.Error()).Str("topic", b.topic).Msg("Failed to forward signal to broker")
	}
}

// receive replays an inbound broker signal on the local bus.
func (b *MQTTBridge) receive(_ pahomqtt.Client, msg pahomqtt.Message) {
	if string(msg.Payload()) == b.clientID {
		return
	}

	b.replaying.Store(true)
	defer b.replaying.Store(false)
	b.bus.Publish(TopicNewLocation)
	b.logger.Debug().Str("topic", b.topic).Msg("Replayed broker signal locally")
}
