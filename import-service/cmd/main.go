package main

import (
	"context"
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
	"golang.org/x/sync/errgroup"

	"cryptotax/external/csvfile"
	"cryptotax/internal/currency"
	"cryptotax/internal/dto"
	"cryptotax/internal/trades/export"
	"cryptotax/internal/trades/publisher"
	"cryptotax/internal/trades/transform"
)

type sink interface {
	Run(ctx context.Context, in <-chan dto.Trade) error
	Count() int
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "Log every normalized trade.")
	output := flag.String("o", "", "Write the trade stream to this file instead of stdout.")
	useKafka := flag.Bool("kafka", false, "Publish trades to Kafka instead of writing JSONL.")
	topic := flag.String("topic", "trades", "The Kafka topic to publish trades to.")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal().Msg("no csv files given, usage: import-service [flags] file.csv ...")
	}

	log.Info().Strs("files", paths).Msg("starting import-service")

	var out sink
	switch {
	case *useKafka:
		kafkaBrokers := os.Getenv("KAFKA_BROKERS")
		if kafkaBrokers == "" {
			log.Fatal().Msg("KAFKA_BROKERS environment variable not set")
		}
		producer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: strings.Split(kafkaBrokers, ","),
			Topic:   *topic,
		})
		defer producer.Close()
		out = publisher.New(producer)
	case *output != "":
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output file")
		}
		defer f.Close()
		out = export.NewWriter(f)
	default:
		out = export.NewWriter(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records := make(chan dto.Record, 1000)
	trades := make(chan dto.Trade, 1000)

	reader := csvfile.NewReader(paths...)
	tr := transform.New(currency.NewService(), log.Logger, *verbose)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(records)
		return reader.Stream(ctx, records)
	})
	g.Go(func() error {
		defer close(trades)
		return tr.Run(ctx, records, trades)
	})
	g.Go(func() error {
		return out.Run(ctx, trades)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().Int("trades", out.Count()).Msg("import complete")
}
