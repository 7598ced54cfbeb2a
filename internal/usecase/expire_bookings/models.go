package expire_bookings

// Result итог запуска, уходит в Step Functions как output задачи
type Result struct {
	Expired int64  `json:"expired"`
	RunAt   string `json:"runAt"`
}
