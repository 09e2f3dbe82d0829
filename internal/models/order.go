package models

import (
	"database/sql"
	"time"
)

// Order — заявка на уборку, как она хранится в таблице orders.
// Photos содержит имена объектов в хранилище, не сами файлы.
type Order struct {
	ID             int64           `json:"id"`
	OrderType      string          `json:"order_type"`
	AreaSize       float64         `json:"area_size"`
	OfferAmountUSD float64         `json:"offer_amount_usd"`
	ClientName     string          `json:"client_name"`
	Phone          string          `json:"phone"`
	Email          sql.NullString  `json:"-"`
	Details        string          `json:"details"`
	GPS            string          `json:"gps"`
	Photos         []string        `json:"photos"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EmailOrEmpty возвращает email или пустую строку, если он не указан.
func (o Order) EmailOrEmpty() string {
	if o.Email.Valid {
		return o.Email.String
	}
	return ""
}
