package expire_bookings

import "errors"

var (
	// ErrExpireFailed ошибка при переводе бронирований в expired
	ErrExpireFailed = errors.New("expire bookings: failed to expire past bookings")

	// ErrNotifyFailed ошибка при отправке результата в Step Functions
	ErrNotifyFailed = errors.New("expire bookings: failed to notify task result")

	// ErrMissingTaskToken задан notifier, но нет токена задачи
	ErrMissingTaskToken = errors.New("expire bookings: task token is required")
)
