package mailer

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

// Sender отправка готового письма (реализуется *gomail.Dialer)
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправляет клиентам письма о бронированиях
type Client struct {
	sender Sender
	cfg    Config
	log    Logger
}

// NewClient создает клиента с SMTP dialer из конфигурации
func NewClient(cfg Config, log Logger) *Client {
	return NewClientWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg, log)
}

// NewClientWithSender создает клиента с произвольным отправителем
func NewClientWithSender(sender Sender, cfg Config, log Logger) *Client {
	return &Client{sender: sender, cfg: cfg, log: log}
}

// SendBookingConfirmation отправляет подтверждение созданного бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	if strings.TrimSpace(booking.CustomerEmail) == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	msg := c.buildConfirmation(booking)

	c.log.Info("Sending booking confirmation for reference=%s to %s", booking.Reference, booking.CustomerEmail)
	if err := c.sender.DialAndSend(msg); err != nil {
		c.log.Error("Failed to send booking confirmation for reference=%s: %v", booking.Reference, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

func (c *Client) buildConfirmation(booking *domain.Booking) *gomail.Message {
	data := confirmation{
		CustomerName: booking.CustomerName,
		Reference:    booking.Reference,
		ProductName:  booking.Product.Name,
		Participants: booking.ParticipantCount,
	}
	for _, s := range booking.Slots {
		data.Slots = append(data.Slots, s.Date+" "+s.Time)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", booking.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s: booking %s confirmed", c.cfg.Studio, booking.Reference))
	m.SetBody("text/plain", renderConfirmation(data, c.cfg.Studio))
	return m
}

func renderConfirmation(data confirmation, studio string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", data.CustomerName)
	fmt.Fprintf(&b, "your booking for %q is confirmed.\n", data.ProductName)
	fmt.Fprintf(&b, "Reference: %s\n", data.Reference)
	fmt.Fprintf(&b, "Participants: %d\n", data.Participants)
	b.WriteString("Sessions:\n")
	for _, s := range data.Slots {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	fmt.Fprintf(&b, "\nSee you at the studio,\n%s\n", studio)
	return b.String()
}
