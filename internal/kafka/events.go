package kafka

import (
	"encoding/json"
	"time"

	"ms-parcels/internal/config"
	"ms-parcels/internal/models"
)

// Events publishes parcel lifecycle events on the configured topics.
type Events struct {
	Producer *Producer
	Topics   config.TopicConfig
}

func NewEvents(producer *Producer, topics config.TopicConfig) *Events {
	return &Events{Producer: producer, Topics: topics}
}

func (e *Events) PublishParcelCreated(parcel models.Parcel) error {
	msgBytes, err := json.Marshal(parcel)
	if err != nil {
		return err
	}
	return e.Producer.Publish(e.Topics.ParcelCreated, parcel.ID, msgBytes)
}

func (e *Events) PublishParcelDeleted(id string) error {
	msgBytes, err := json.Marshal(map[string]string{
		"id":         id,
		"deleted_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return e.Producer.Publish(e.Topics.ParcelDeleted, id, msgBytes)
}
