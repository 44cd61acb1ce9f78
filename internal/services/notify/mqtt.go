package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"wildwatch/internal/logger"
	"wildwatch/internal/models"
)

// Notifier publishes detection events to an MQTT broker. It is optional:
// a nil *Notifier is safe to use and publishes nothing.
type Notifier struct {
	client mqtt.Client
	topic  string
	logger *logger.Logger
}

// NewNotifier connects to the broker. Callers treat a connection failure
// as non-fatal and run without notifications.
func NewNotifier(broker, clientID, topic string, logger *logger.Logger) (*Notifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", broker, token.Error())
	}

	logger.Info("📡 MQTT notifier connected to %s (topic %s)", broker, topic)

	return &Notifier{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// PublishEvent sends the event as JSON with QoS 1. Publish failures are
// logged, not returned: event delivery is best effort.
func (n *Notifier) PublishEvent(event *models.Event) {
	if n == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("Failed to marshal detection event: %v", err)
		return
	}

	token := n.client.Publish(n.topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		n.logger.Error("Failed to publish detection event: %v", token.Error())
	}
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	n.client.Disconnect(250)
}
