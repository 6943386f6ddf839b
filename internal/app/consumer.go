package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"farmstaff/internal/leavebalance"
	"farmstaff/internal/messaging/kafka/consumer"
	"farmstaff/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer provisions default leave balances from staff lifecycle
// events until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	balanceRepo := leavebalance.NewRepository(gormDB)
	balanceService := leavebalance.NewService(sqlDB, balanceRepo)

	lifecycleConsumer := consumer.NewStaffLifecycleConsumer(
		kafkaBroker,
		"farmstaff-leave-balance",
		balanceService,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- lifecycleConsumer.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("consumer shutting down")
		cancel()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
