//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Producer=Producer"
package message

import "context"

const (
	ConsumptionTypeExclusive ConsumptionType = iota
	ConsumptionTypeShared
)

type (
	ConsumerMessage struct {
		Context context.Context
		Message Message
	}

	Consumer interface {
		Topic() Topic
		Subscriber() SubscriberName
		Messages() <-chan *ConsumerMessage
		Ack(*ConsumerMessage) error
		Nack(*ConsumerMessage) error
		Close() error
	}

	ConsumerProvider interface {
		Consumer(Topic, SubscriberName, ConsumptionType) (Consumer, error)
	}

	Producer interface {
		Produce(ctx context.Context, msg *Message) error
	}

	ConsumptionType int
)
