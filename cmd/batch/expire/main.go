package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CeramicsBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-CeramicsBooking/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/SMC-CeramicsBooking/internal/service/bookings"
	expireBookingsUC "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/expire_bookings"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/logger"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/runner"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/txmanager"
)

// Пакетная задача: переводит прошедшие бронирования в expired.
// Запускается из Step Functions, токен задачи передается последним аргументом.
// При ENV=LOCAL токен не нужен и результат никуда не отправляется.
func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
	timeout := flag.Duration("timeout", 5*time.Minute, "таймаут пакетной задачи")
	flag.Parse()

	local := os.Getenv("ENV") == "LOCAL"

	taskToken := ""
	if !local {
		if flag.NArg() == 0 {
			fmt.Println("Task token is required")
			os.Exit(1)
		}
		taskToken = flag.Arg(flag.NArg() - 1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Step Functions клиент только вне локального окружения
	var notifier expireBookingsUC.TaskNotifier
	if !local {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Fatal("Failed to load AWS config: %v", err)
		}
		notifier = sfn.NewFromConfig(awsCfg)
	}

	bookingSvc := bookingsService.NewService(
		bookingRepo.NewRepository(db),
		txmanager.NewTransactionManager(txmanager.SQLBeginner{DB: db}),
		log,
	)

	job, err := expireBookingsUC.NewUseCase(bookingSvc, notifier, taskToken, log)
	if err != nil {
		log.Fatal("Failed to create batch job: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- runner.RunWithTimeout(ctx, *timeout, job.Run)
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal: %v", sig)
		cancel()
		os.Exit(1)
	case err := <-errChan:
		if err != nil {
			log.Error("Batch process failed: %v", err)

			reportCtx, reportCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if reportErr := job.ReportFailure(reportCtx, err); reportErr != nil {
				log.Error("Failed to send task failure: %v", reportErr)
			}
			reportCancel()

			os.Exit(1)
		}
		log.Info("Batch process completed successfully")
	}
}
