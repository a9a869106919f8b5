package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is a snapshot of an order's amounts at generation time. The order's
// total is locked at creation, so regenerating after payments only changes
// the paid/balance columns.
type Invoice struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"storeId"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	OrderCode     string    `gorm:"not null" json:"orderCode"`
	ChallanNo     *string   `json:"challanNo"`
	CustomerName  string    `gorm:"not null" json:"customerName"`
	CustomerPhone string    `gorm:"not null" json:"customerPhone"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoiceDate"`

	Total   float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	Paid    float64 `gorm:"type:decimal(10,2);default:0.0" json:"paid"`
	Balance float64 `gorm:"type:decimal(10,2);not null" json:"balance"`

	// Tag/invoice flows require a challan; generation still succeeds without
	// one but the invoice is flagged for follow-up.
	MissingChallan bool `gorm:"default:false" json:"missingChallan"`

	CreatedAt time.Time `json:"createdAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
