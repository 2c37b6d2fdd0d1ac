package signals_test

import (
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geobook/geobook/internal/signals"
)

// mockToken is a mock implementation of the mqtt.Token interface.
type mockToken struct {
	mock.Mock
}

func (m *mockToken) Wait() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockToken) WaitTimeout(timeout time.Duration) bool {
	args := m.Called(timeout)
	return args.Bool(0)
}

func (m *mockToken) Done() <-chan struct{} {
	args := m.Called()
	return args.Get(0).(<-chan struct{})
}

func (m *mockToken) Error() error {
	args := m.Called()
	return args.Error(0)
}

// mockMQTTClient is a mock implementation of the mqtt.MQTTClient interface.
type mockMQTTClient struct {
	mock.Mock
	handler pahomqtt.MessageHandler
}

func (m *mockMQTTClient) Connect() pahomqtt.Token {
	args := m.Called()
	return args.Get(0).(pahomqtt.Token)
}

func (m *mockMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(pahomqtt.Token)
}

func (m *mockMQTTClient) Subscribe(topic string, qos byte, callback pahomqtt.MessageHandler) pahomqtt.Token {
	m.handler = callback
	args := m.Called(topic, qos, mock.Anything)
	return args.Get(0).(pahomqtt.Token)
}

func (m *mockMQTTClient) Unsubscribe(topics ...string) pahomqtt.Token {
	args := m.Called(topics)
	return args.Get(0).(pahomqtt.Token)
}

func (m *mockMQTTClient) Disconnect(quiesce uint) {
	m.Called(quiesce)
}

// mockMessage implements pahomqtt.Message for testing.
type mockMessage struct {
	topic   string
	payload []byte
}

func (m *mockMessage) Duplicate() bool   { return false }
func (m *mockMessage) Qos() byte         { return 1 }
func (m *mockMessage) Retained() bool    { return false }
func (m *mockMessage) Topic() string     { return m.topic }
func (m *mockMessage) MessageID() uint16 { return 1 }
func (m *mockMessage) Payload() []byte   { return m.payload }
func (m *mockMessage) Ack()              {}

func okToken() *mockToken {
	token := new(mockToken)
	token.On("Wait").Return(true)
	token.On("Error").Return(nil)
	return token
}

func TestMQTTBridge_ForwardsLocalSignalToBroker(t *testing.T) {
	bus := signals.NewSignalBus(zerolog.Nop())
	client := new(mockMQTTClient)
	client.On("Subscribe", "geobook/newLocation", byte(1), mock.Anything).Return(okToken())
	client.On("Publish", "geobook/newLocation", byte(1), false, []byte("device-a")).Return(okToken())

	bridge := signals.NewMQTTBridge(bus, client, "geobook/newLocation", 1, "device-a", zerolog.Nop())
	require.NoError(t, bridge.Start())

	bus.Publish(signals.TopicNewLocation)

	client.AssertCalled(t, "Publish", "geobook/newLocation", byte(1), false, []byte("device-a"))
}

func TestMQTTBridge_ReplaysBrokerSignalLocally(t *testing.T) {
	bus := signals.NewSignalBus(zerolog.Nop())
	client := new(mockMQTTClient)
	client.On("Subscribe", "geobook/newLocation", byte(1), mock.Anything).Return(okToken())

	bridge := signals.NewMQTTBridge(bus, client, "geobook/newLocation", 1, "device-a", zerolog.Nop())
	require.NoError(t, bridge.Start())

	received := 0
	bus.Subscribe(signals.TopicNewLocation, func() { received++ })

	client.handler(nil, &mockMessage{topic: "geobook/newLocation", payload: []byte("device-b")})

	assert.Equal(t, 1, received)
	// a replayed signal must not be forwarded back out
	client.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMQTTBridge_IgnoresOwnEcho(t *testing.T) {
	bus := signals.NewSignalBus(zerolog.Nop())
	client := new(mockMQTTClient)
	client.On("Subscribe", "geobook/newLocation", byte(1), mock.Anything).Return(okToken())

	bridge := signals.NewMQTTBridge(bus, client, "geobook/newLocation", 1, "device-a", zerolog.Nop())
	require.NoError(t, bridge.Start())

	received := 0
	bus.Subscribe(signals.TopicNewLocation, func() { received++ })

	client.handler(nil, &mockMessage{topic: "geobook/newLocation", payload: []byte("device-a")})
	assert.Equal(t, 0, received)
}

func TestMQTTBridge_StartStopLifecycle(t *testing.T) {
	bus := signals.NewSignalBus(zerolog.Nop())
	client := new(mockMQTTClient)
	client.On("Subscribe", "geobook/newLocation", byte(1), mock.Anything).Return(okToken())
	client.On("Unsubscribe", []string{"geobook/newLocation"}).Return(okToken())

	bridge := signals.NewMQTTBridge(bus, client, "geobook/newLocation", 1, "device-a", zerolog.Nop())

	require.NoError(t, bridge.Start())
	assert.Error(t, bridge.Start(), "double start must be rejected")

	require.NoError(t, bridge.Stop())
	assert.Error(t, bridge.Stop(), "double stop must be rejected")
}
