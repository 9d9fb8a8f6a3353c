package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/cardoctor/config"
	"github.com/Domenick1991/cardoctor/internal/email"
	"github.com/Domenick1991/cardoctor/internal/kafka"
	"github.com/Domenick1991/cardoctor/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("worker needs kafka.brokers")
	}

	lg := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, lg)
	defer consumer.Close()

	emailSender := email.NewSender(lg)

	lg.Info("worker consuming", slog.String("topic", cfg.Kafka.NotificationsTopic), slog.String("group", cfg.Kafka.GroupID))
	if err := consumer.Consume(ctx, emailSender.Send); err != nil {
		lg.Error("consumer stopped", slog.Any("error", err))
		return
	}
	lg.Info("worker stopped")
}
