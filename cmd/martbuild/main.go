// Command martbuild joins the raw source exports into the denormalized
// dashboard_mart.csv the analytics service reads.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"analytics-service/config"
	"analytics-service/internal/broker"
	"analytics-service/internal/mart"
	"analytics-service/internal/models"
	"analytics-service/internal/util"

	"github.com/google/uuid"
)

func main() {
	dataDir := flag.String("data", "data", "directory with the raw source CSV exports")
	output := flag.String("out", "dashboard_mart.csv", "output path for the mart file")
	fromMonth := flag.String("from", "2017-01", "first y_mth to keep (inclusive)")
	toMonth := flag.String("to", "2018-08", "last y_mth to keep (inclusive)")
	notify := flag.Bool("notify", false, "publish a mart-refresh event after a successful build")
	flag.Parse()

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	opts := mart.BuildOptions{
		DataDir:    *dataDir,
		OutputPath: *output,
		FromMonth:  *fromMonth,
		ToMonth:    *toMonth,
	}

	rows, err := mart.BuildMart(opts)
	if err != nil {
		log.Fatalf("Mart build failed: %v", err)
	}
	log.Printf("Mart built: %s (%d rows)", *output, rows)

	if !*notify {
		return
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicRefresh)
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := &models.MartRefreshedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeMartRefreshed,
			Timestamp: time.Now(),
		},
		Source:   "martbuild",
		RowCount: rows,
	}
	if err := producer.PublishEvent(ctx, "mart-refresh", event); err != nil {
		log.Printf("Failed to publish refresh event: %v", err)
		return
	}
	log.Println("Refresh event published")
}
