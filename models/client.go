package models

// Client is a billable counterparty. Invoices reference clients by display
// name, so Name doubles as the join key for the invoice-count rollup.
type Client struct {
	Id      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null;unique"`
	Email   string `json:"email" gorm:"unique;not null"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Active  bool   `json:"-"`
}
