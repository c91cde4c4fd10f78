package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"cryptotax/internal/dto"
	"cryptotax/internal/trades/export"
	"cryptotax/internal/trades/valuate"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	_ = godotenv.Load()

	file := flag.String("f", "", "Read trades from this JSONL file instead of Kafka.")
	topic := flag.String("topic", "trades", "The Kafka topic to consume trades from.")
	group := flag.String("group", "report-service", "The Kafka consumer group id.")
	rates := flag.String("rates", "", "Price trades with this JSON rate table.")
	fiat := flag.String("fiat", "", "Reporting fiat currency when no rate table is given.")
	flag.Parse()

	var valuator *valuate.Valuator
	var fiatLabel string
	switch {
	case *rates != "":
		table, err := valuate.LoadTable(*rates)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load rate table")
		}
		valuator = valuate.New(table, log.Logger)
		fiatLabel = table.Fiat()
	case *fiat != "":
		fiatLabel = strings.ToUpper(*fiat)
		valuator = valuate.New(valuate.NewTable(fiatLabel), log.Logger)
	}

	rep := newReport(fiatLabel)
	handle := func(trade dto.Trade) {
		if valuator != nil {
			valuator.Apply(&trade)
		}
		printTrade(os.Stdout, trade, fiatLabel)
		rep.add(trade)
	}

	if *file != "" {
		trades, err := export.ReadAll(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read trades")
		}
		for _, trade := range trades {
			handle(trade)
		}
		rep.write(os.Stdout)
		return
	}

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		log.Fatal().Msg("KAFKA_BROKERS environment variable not set")
	}

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(kafkaBrokers, ","),
		GroupID: *group,
		Topic:   *topic,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", *topic).Msg("consuming trades, interrupt to print the report")
	if err := consume(ctx, consumer, handle); err != nil {
		log.Fatal().Err(err).Msg("report failed")
	}
	rep.write(os.Stdout)
}

// consume reads trades from Kafka until ctx ends. Messages that do not
// decode as trades are skipped.
func consume(ctx context.Context, consumer *kafka.Reader, handle func(dto.Trade)) error {
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		trade, err := export.Decode(msg.Value)
		if err != nil {
			log.Warn().Err(err).Msg("skipping undecodable message")
			continue
		}
		handle(trade)
	}
}
