package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
)

const (
	// CatalogTopic carries full catalog snapshots. Every message replaces the
	// consumer's whole book list, so the latest message always wins.
	CatalogTopic = "catalog.snapshots"

	CatalogConsumerGroup = "bookshop-catalog"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group loop until ctx is canceled.
func Consume(ctx context.Context, group sarama.ConsumerGroup, h sarama.ConsumerGroupHandler, topic string) error {
	for {
		if err := group.Consume(ctx, []string{topic}, h); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Publisher is a SyncProducer bound to a single topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(cfg Config, topic string) (*Publisher, error) {
	producer, err := NewProducer(cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

func (p *Publisher) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
