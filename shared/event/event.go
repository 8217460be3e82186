package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"staybook/config"
	"staybook/infras/kafka"
	"staybook/infras/otel"
	"staybook/infras/rabbitmq"
	"staybook/shared/constant"
)

const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

const otelTopicAttribute = "event.topic"

// Handler receives the raw JSON body of one event.
type Handler func(key string, body []byte) error

// Broker is the outbound and inbound event channel for domain events.
type Broker interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Subscribe(ctx context.Context, group, topic string, handler Handler) error
}

// New selects the broker from EVENT_BROKER; anything unrecognised disables
// publishing.
func New(cfg *config.Config, otl otel.Otel) Broker {
	switch strings.ToLower(cfg.Event.Broker) {
	case BrokerKafka:
		return &kafkaBroker{client: kafka.New(cfg), otel: otl}
	case BrokerRabbitMQ:
		return &rabbitBroker{client: rabbitmq.New(cfg), otel: otl}
	default:
		log.Info().Str("broker", cfg.Event.Broker).Msg("event broker disabled")

		return noopBroker{}
	}
}

func NewKafkaBroker(client kafka.Client, otl otel.Otel) Broker {
	return &kafkaBroker{client: client, otel: otl}
}

func NewRabbitBroker(client rabbitmq.Client, otl otel.Otel) Broker {
	return &rabbitBroker{client: client, otel: otl}
}

func encode(payload any) ([]byte, error) {
	if raw, ok := payload.([]byte); ok {
		return raw, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	return body, nil
}

type kafkaBroker struct {
	client kafka.Client
	otel   otel.Otel
}

func (b *kafkaBroker) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelTopicAttribute, topic)

	body, err := encode(payload)
	if err != nil {
		return err
	}

	return b.client.SendMessages(ctx, topic, kafka.Message{Key: key, Value: body})
}

func (b *kafkaBroker) Subscribe(ctx context.Context, group, topic string, handler Handler) error {
	return b.client.Consume(ctx, group, topic, func(msg kafkaGo.Message) {
		if err := handler(string(msg.Key), msg.Value); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Msg("failed to handle event")
		}
	})
}

type rabbitBroker struct {
	client rabbitmq.Client
	otel   otel.Otel
}

func (b *rabbitBroker) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelTopicAttribute, topic)

	body, err := encode(payload)
	if err != nil {
		return err
	}

	return b.client.Publish(ctx, topic, key, body)
}

func (b *rabbitBroker) Subscribe(ctx context.Context, group, topic string, handler Handler) error {
	return b.client.Consume(ctx, group, topic, handler)
}

type noopBroker struct{}

func (noopBroker) Publish(context.Context, string, string, any) error { return nil }

func (noopBroker) Subscribe(ctx context.Context, _, _ string, _ Handler) error {
	<-ctx.Done()

	return nil
}
