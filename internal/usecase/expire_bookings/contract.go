package expire_bookings

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// BookingExpirer перевод прошедших бронирований в expired
type BookingExpirer interface {
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
}

// TaskNotifier отчет о результате в Step Functions (реализуется *sfn.Client)
type TaskNotifier interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
	SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
