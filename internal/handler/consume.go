package handler

import (
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"go.uber.org/zap"
)

type replaceFn func(books []model.Book)

// Consumer feeds catalog snapshot messages into the store. Each message is a
// whole list; records failing normalization are skipped.
type Consumer struct {
	replace replaceFn
	log     *zap.Logger
	ready   chan bool
}

func NewConsumer(replace replaceFn, log *zap.Logger) *Consumer {
	return &Consumer{
		replace: replace,
		log:     log.Named("consumer"),
		ready:   make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(consumer.ready)
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var snapshots []model.BookSnapshot
			if err := json.Unmarshal(message.Value, &snapshots); err != nil {
				consumer.log.Error("snapshot unmarshal", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			books := make([]model.Book, 0, len(snapshots))
			for _, snap := range snapshots {
				book, err := snap.Normalize()
				if err != nil {
					consumer.log.Warn("dropping malformed snapshot record",
						zap.String("id", snap.ID), zap.Error(err))
					continue
				}
				books = append(books, book)
			}
			consumer.replace(books)

			consumer.log.Debug("catalog snapshot applied",
				zap.Int("records", len(books)),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
