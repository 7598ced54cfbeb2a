package ratelimit

import "errors"

var (
	// ErrInvalidConfig возвращается при нулевом лимите или окне
	ErrInvalidConfig = errors.New("ratelimit: limit and window must be positive")

	// ErrStore возвращается при ошибке хранилища счетчиков
	ErrStore = errors.New("ratelimit: store error")
)
