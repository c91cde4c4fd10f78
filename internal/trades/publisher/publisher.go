// Package publisher ships normalized trades to Kafka.
package publisher

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"cryptotax/internal/dto"
	"cryptotax/internal/trades/export"
)

// Publisher writes trades to a Kafka topic, keyed by pair so every
// instrument's trades land on one partition in order.
type Publisher struct {
	producer *kafka.Writer
	count    int
}

func New(producer *kafka.Writer) *Publisher {
	return &Publisher{producer: producer}
}

// Count reports how many trades reached Kafka.
func (p *Publisher) Count() int { return p.count }

// Run drains in to Kafka until it closes or ctx ends. Failed writes are
// logged and skipped.
func (p *Publisher) Run(ctx context.Context, in <-chan dto.Trade) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case trade, ok := <-in:
			if !ok {
				return nil
			}
			payload, err := export.Encode(trade)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal trade")
				continue
			}
			err = p.producer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(trade.Pair()),
				Value: payload,
			})
			if err != nil {
				log.Error().Err(err).Str("pair", trade.Pair()).Msg("failed to write message to kafka")
				continue
			}
			p.count++
		}
	}
}
