package pulsar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/message"
)

const pulsarMessageIDContextKey contextKey = iota

type contextKey int

var errMessageIDNotFound = errors.New("pulsar message id not found in context")

func (b *MessageBroker) Consumer(
	topic message.Topic,
	subscriber message.SubscriberName,
	consumptionType message.ConsumptionType,
) (message.Consumer, error) {
	subscriptionType := pulsar.Exclusive
	if consumptionType == message.ConsumptionTypeShared {
		subscriptionType = pulsar.Shared
	}

	consumer, err := b.client.Subscribe(pulsar.ConsumerOptions{
		Topic:            string(topic),
		SubscriptionName: string(subscriber),
		Type:             subscriptionType,
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic %s by %s: %w", topic, subscriber, err)
	}

	return &messageConsumer{
		topic:      topic,
		subscriber: subscriber,
		pulsar:     consumer,
		messages:   make(chan *message.ConsumerMessage),
	}, nil
}

type messageConsumer struct {
	topic      message.Topic
	subscriber message.SubscriberName
	pulsar     pulsar.Consumer

	once     sync.Once
	messages chan *message.ConsumerMessage
}

func (c *messageConsumer) Topic() message.Topic {
	return c.topic
}

func (c *messageConsumer) Subscriber() message.SubscriberName {
	return c.subscriber
}

func (c *messageConsumer) Messages() <-chan *message.ConsumerMessage {
	c.once.Do(func() {
		go c.forwardMessages()
	})

	return c.messages
}

func (c *messageConsumer) Ack(msg *message.ConsumerMessage) error {
	messageID, ok := msg.Context.Value(pulsarMessageIDContextKey).(pulsar.MessageID)
	if !ok {
		return errMessageIDNotFound
	}

	return c.pulsar.AckID(messageID)
}

func (c *messageConsumer) Nack(msg *message.ConsumerMessage) error {
	messageID, ok := msg.Context.Value(pulsarMessageIDContextKey).(pulsar.MessageID)
	if !ok {
		return errMessageIDNotFound
	}

	c.pulsar.NackID(messageID)
	return nil
}

func (c *messageConsumer) Close() error {
	c.pulsar.Close()
	return nil
}

func (c *messageConsumer) forwardMessages() {
	defer close(c.messages)

	for msg := range c.pulsar.Chan() {
		messageID, err := uuid.Parse(msg.Properties()[messageIDPropertyName])
		if err != nil {
			messageID = uuid.New()
		}

		metadata := make(message.Metadata, len(msg.Properties()))
		for key, value := range msg.Properties() {
			if key != messageIDPropertyName {
				metadata[key] = value
			}
		}

		c.messages <- &message.ConsumerMessage{
			Context: context.WithValue(context.Background(), pulsarMessageIDContextKey, msg.ID()),
			Message: message.Message{
				ID:       messageID,
				Topic:    message.Topic(msg.Topic()),
				Key:      msg.Key(),
				Payload:  msg.Payload(),
				Metadata: metadata,
			},
		}
	}
}
