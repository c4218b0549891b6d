// Package events pushes tracker updates to a user's other sessions
// over MQTT, so a toggle on one device refreshes the rest.
package events

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/prayer"
)

type MQTTPublisher struct {
	client mqtt.Client
}

// Connect dials the broker with a unique client id. The publisher is
// optional infrastructure: when the broker is unreachable the service
// runs without device sync.
func Connect(brokerURL string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("minaret-api-" + uuid.NewString())
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishTrackerUpdate sends the rebuilt view to the user's topic.
// Delivery is best effort; a failed publish only logs.
func (p *MQTTPublisher) PublishTrackerUpdate(userID int, view prayer.TrackerView) {
	payload, err := json.Marshal(view)
	if err != nil {
		return
	}

	topic := fmt.Sprintf("users/%d/prayer", userID)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Warn().Err(token.Error()).Int("user_id", userID).Msg("failed to publish tracker update")
	}
}

// Close disconnects the shared client.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
