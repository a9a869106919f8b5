package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const LaundryRatePerKg = 80.0

type Order struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_order_code,priority:1" json:"storeId"`

	OrderCode string  `gorm:"not null;uniqueIndex:idx_store_order_code,priority:2" json:"orderCode"`
	ChallanNo *string `gorm:"index" json:"challanNo"`

	// Customer details are a snapshot taken at creation, not a foreign key.
	CustomerName    string `gorm:"not null" json:"customerName"`
	CustomerPhone   string `gorm:"not null;index" json:"customerPhone"`
	CustomerAddress string `json:"customerAddress,omitempty"`

	ServiceType ServiceType `gorm:"type:varchar(20);not null;index" json:"serviceType"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	// Laundry orders carry weight and piece count; dryclean orders carry
	// Items; home cleaning is a flat price captured in TotalAmount.
	Weight float64 `json:"weight,omitempty"`
	Pieces int     `json:"pieces,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	// TotalAmount is priced once at creation and never recomputed, even if
	// items are edited afterwards.
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	PickupAt *time.Time `json:"pickupAt,omitempty"`
	DropAt   *time.Time `json:"dropAt,omitempty"`

	Notes  string `json:"notes,omitempty"`
	Source string `gorm:"type:varchar(10);not null;default:'walkin'" json:"source"` // 'hq' or 'walkin'

	StatusHistory []StatusEvent `gorm:"foreignKey:OrderID" json:"statusHistory"`
	Payments      []Payment     `gorm:"foreignKey:OrderID" json:"payments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// Balance is the amount still owed. Negative means overpayment; nothing
// clamps it because no refund operation exists.
func (o *Order) Balance() float64 {
	paid := 0.0
	for _, p := range o.Payments {
		paid += p.Amount
	}
	return o.TotalAmount - paid
}

type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity int       `gorm:"default:1" json:"quantity"`
	Price    float64   `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// StatusEvent is one entry of an order's append-only status history. The
// first entry is the initial pending state written at creation.
type StatusEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key" json:"-"`
	OrderID   uuid.UUID   `gorm:"type:uuid;index;not null" json:"-"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

func (e *StatusEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// Payment is one entry of an order's append-only payment ledger. Entries are
// never mutated or removed once recorded.
type Payment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Amount  float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method  string    `gorm:"type:varchar(20);not null" json:"method"` // Cash, UPI, Card
	Note    string    `json:"note,omitempty"`
	Date    time.Time `gorm:"not null" json:"date"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
