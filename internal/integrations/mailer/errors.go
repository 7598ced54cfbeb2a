package mailer

import "errors"

var (
	// ErrNoRecipient возвращается, когда у бронирования нет email
	ErrNoRecipient = errors.New("mailer: booking has no customer email")

	// ErrSendFailed возвращается при ошибке SMTP
	ErrSendFailed = errors.New("mailer: failed to send message")
)
