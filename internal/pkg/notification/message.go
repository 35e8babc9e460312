package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/message"
)

const (
	Topic message.Topic = "persistent://public/default/user-notification"

	TypeEmailVerification Type = "email_verification"
	TypePasswordReset     Type = "password_reset"
	TypePasswordChanged   Type = "password_changed"
)

type (
	// Message asks the notification worker to email the recipient
	Message struct {
		Type      Type       `json:"type"`
		Recipient string     `json:"recipient"`
		Token     string     `json:"token,omitempty"`
		ValidTill *time.Time `json:"validTill,omitempty"`
	}

	Type string
)

// Encode keys the message by recipient. The worker handles messages concurrently on a shared subscription,
// so delivery order is not guaranteed and every message is self-contained.
func Encode(msg Message) (*message.Message, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s notification: %w", msg.Type, err)
	}

	return &message.Message{
		ID:      uuid.New(),
		Topic:   Topic,
		Key:     msg.Recipient,
		Payload: payload,
	}, nil
}

func Decode(msg *message.Message) (Message, error) {
	var result Message
	err := json.Unmarshal(msg.Payload, &result)
	if err != nil {
		return Message{}, fmt.Errorf("decode notification %s: %w", msg.ID, err)
	}

	return result, nil
}
