package models

import (
	"time"
)

// DateLayout is the wire format for calendar dates (issue date, due date).
const DateLayout = "2006-01-02"

type InvoiceStatus string

const (
	StatusDraft          InvoiceStatus = "draft"
	StatusPending        InvoiceStatus = "pending"
	StatusPendingPayment InvoiceStatus = "pending_payment"
	StatusPaid           InvoiceStatus = "paid"
	StatusOverdue        InvoiceStatus = "overdue"
	StatusProcessing     InvoiceStatus = "processing"
	StatusFailed         InvoiceStatus = "failed"
)

// Known reports whether s is one of the lifecycle statuses.
func (s InvoiceStatus) Known() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPendingPayment, StatusPaid,
		StatusOverdue, StatusProcessing, StatusFailed:
		return true
	}
	return false
}

// Display collapses the lifecycle statuses into the three values the invoice
// list shows: paid -> "Paid", overdue/failed -> "Overdue", rest -> "Pending".
func (s InvoiceStatus) Display() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusOverdue, StatusFailed:
		return "Overdue"
	default:
		return "Pending"
	}
}

// Invoice is the current/live state of a billable document.
type Invoice struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Client string `json:"client" gorm:"not null;index"`

	// Live items (latest state). Amount is always the tax-inclusive total of
	// Items at last save; it is never written independently.
	Items  []InvoiceLineItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Amount float64           `json:"amount" gorm:"type:numeric(12,2)"`

	Status InvoiceStatus `json:"status" gorm:"type:VARCHAR(20);index"`

	Date    string `json:"date"`    // issue date, YYYY-MM-DD
	DueDate string `json:"dueDate"` // YYYY-MM-DD
	Notes   string `json:"notes"`

	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	PaidAt             *time.Time `json:"paidAt"`
	PaymentInitiatedAt *time.Time `json:"paymentInitiatedAt"`
}

type InvoiceLineItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"index"` // fast join
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice" gorm:"type:numeric(12,2)"`
}

// LineTotal is the derived quantity * unit price for one row.
func (it InvoiceLineItem) LineTotal() float64 {
	return float64(it.Quantity) * it.UnitPrice
}
