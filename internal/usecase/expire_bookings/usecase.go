package expire_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// UseCase пакетная задача: закрывает прошедшие бронирования и сообщает результат
type UseCase struct {
	expirer      BookingExpirer
	notifier     TaskNotifier
	taskToken    string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает задачу. notifier может быть nil (локальный запуск).
func NewUseCase(expirer BookingExpirer, notifier TaskNotifier, taskToken string, logger Logger) (*UseCase, error) {
	if notifier != nil && taskToken == "" {
		return nil, ErrMissingTaskToken
	}
	return &UseCase{
		expirer:      expirer,
		notifier:     notifier,
		taskToken:    taskToken,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Run выполняет задачу. Сигнатура подходит для runner.RunWithTimeout.
func (uc *UseCase) Run(ctx context.Context) error {
	now := uc.timeProvider.Now()
	uc.logger.Info("ExpireBookings: started at %s", now.Format(time.RFC3339))

	// 1. Переводим прошедшие бронирования в expired
	count, err := uc.expirer.ExpirePast(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireBookings: failed: %v", err)
		return fmt.Errorf("%w: %w", ErrExpireFailed, err)
	}

	// 2. Отчитываемся в Step Functions
	if uc.notifier == nil {
		uc.logger.Info("ExpireBookings: expired %d bookings (no task token, skipping notification)", count)
		return nil
	}

	output, err := json.Marshal(Result{Expired: count, RunAt: now.Format(time.RFC3339)})
	if err != nil {
		return fmt.Errorf("%w: marshal output: %w", ErrNotifyFailed, err)
	}

	_, err = uc.notifier.SendTaskSuccess(ctx, &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(uc.taskToken),
		Output:    aws.String(string(output)),
	})
	if err != nil {
		uc.logger.Error("ExpireBookings: failed to send task success: %v", err)
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}

	uc.logger.Info("ExpireBookings: expired %d bookings, task success sent", count)
	return nil
}

// ReportFailure сообщает Step Functions о неудачном запуске
func (uc *UseCase) ReportFailure(ctx context.Context, cause error) error {
	if uc.notifier == nil {
		return nil
	}

	_, err := uc.notifier.SendTaskFailure(ctx, &sfn.SendTaskFailureInput{
		TaskToken: aws.String(uc.taskToken),
		Error:     aws.String("ExpireBookingsFailed"),
		Cause:     aws.String(cause.Error()),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}
	return nil
}
