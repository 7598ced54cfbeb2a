package mailer

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Studio   string // Название мастерской в теме и подписи письма
}

// confirmation данные письма с подтверждением
type confirmation struct {
	CustomerName string
	Reference    string
	ProductName  string
	Participants int
	Slots        []string // "2025-03-13 10:00"
}
