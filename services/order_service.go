// services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mycleaners-backend/models"
	"mycleaners-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCancellable    = errors.New("order can only be cancelled while pending")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrPickupNotFound    = errors.New("pickup request not found")
	ErrPickupConverted   = errors.New("pickup request already converted")
)

// OrderService owns the order collection. Every mutation goes through its
// methods; nothing else writes orders, history entries or payments.
type OrderService struct {
	db     *gorm.DB
	strict bool
}

// NewOrderService returns a service backed by db. With strict enabled,
// UpdateStatus only accepts the canonical successor of the current status
// (or a cancellation while pending).
func NewOrderService(db *gorm.DB, strict bool) *OrderService {
	return &OrderService{db: db, strict: strict}
}

type OrderItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"min=1"`
	Price    float64 `json:"price" binding:"min=0"`
}

type CreateOrderInput struct {
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone" binding:"required"`
	CustomerAddress string             `json:"customerAddress"`
	ServiceType     models.ServiceType `json:"serviceType" binding:"required"`
	ChallanNo       *string            `json:"challanNo"`
	Weight          float64            `json:"weight"`
	Pieces          int                `json:"pieces"`
	Items           []OrderItemInput   `json:"items"`
	FlatPrice       float64            `json:"flatPrice"`
	PickupAt        *time.Time         `json:"pickupAt"`
	DropAt          *time.Time         `json:"dropAt"`
	Notes           string             `json:"notes"`
	Source          string             `json:"source"`
}

// PriceFor computes the order total from the service-specific rule. The
// result is frozen on the order at creation.
func PriceFor(input CreateOrderInput) float64 {
	switch input.ServiceType {
	case models.ServiceLaundry:
		return input.Weight * models.LaundryRatePerKg
	case models.ServiceDryclean:
		total := 0.0
		for _, item := range input.Items {
			total += item.Price * float64(item.Quantity)
		}
		return total
	case models.ServiceHomeCleaning:
		return input.FlatPrice
	}
	return 0
}

func validateServiceDetails(input CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return errors.New("customer name is required")
	}
	if !utils.ValidatePhone(input.CustomerPhone) {
		return errors.New("customer phone is invalid")
	}
	switch input.ServiceType {
	case models.ServiceLaundry:
		if input.Weight <= 0 {
			return errors.New("weight is required for laundry orders")
		}
	case models.ServiceDryclean:
		if len(input.Items) == 0 {
			return errors.New("at least one item is required for dryclean orders")
		}
		for _, item := range input.Items {
			if strings.TrimSpace(item.Name) == "" {
				return errors.New("item name is required")
			}
			if item.Quantity < 1 {
				return errors.New("item quantity must be at least 1")
			}
		}
	case models.ServiceHomeCleaning:
		if input.FlatPrice <= 0 {
			return errors.New("price is required for home cleaning orders")
		}
	default:
		return fmt.Errorf("invalid service type: %s", input.ServiceType)
	}
	return nil
}

// Create validates the service-specific details, prices the order, assigns
// the next order code for the store and writes the order together with its
// initial pending history entry in one transaction.
func (s *OrderService) Create(storeID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if err := validateServiceDetails(input); err != nil {
		return nil, err
	}

	source := input.Source
	if source != "hq" {
		source = "walkin"
	}

	now := time.Now()
	order := models.Order{
		StoreID:         storeID,
		ChallanNo:       input.ChallanNo,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		ServiceType:     input.ServiceType,
		Status:          models.StatusPending,
		TotalAmount:     PriceFor(input),
		PickupAt:        input.PickupAt,
		DropAt:          input.DropAt,
		Notes:           input.Notes,
		Source:          source,
	}

	if input.ServiceType == models.ServiceLaundry {
		order.Weight = input.Weight
		order.Pieces = input.Pieces
	}
	if input.ServiceType == models.ServiceDryclean {
		for _, item := range input.Items {
			order.Items = append(order.Items, models.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := nextOrderCode(tx, storeID, now)
		if err != nil {
			return err
		}
		order.OrderCode = code

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		event := models.StatusEvent{
			OrderID:   order.ID,
			Status:    models.StatusPending,
			Timestamp: now,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(order.ID)
}

// nextOrderCode derives MC-<year>-<seq> from the store's order count in the
// current year. The sequence lives server-side inside the create transaction
// so a single authority owns it.
func nextOrderCode(tx *gorm.DB, storeID uuid.UUID, now time.Time) (string, error) {
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	var count int64
	if err := tx.Model(&models.Order{}).
		Where("store_id = ? AND created_at >= ?", storeID, yearStart).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("MC-%d-%03d", now.Year(), count+1), nil
}

// Get returns the order with its items, history and payments loaded.
func (s *OrderService) Get(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus appends a history entry and moves the order to status. Writes
// to delivered or cancelled orders are always rejected; in strict mode only
// the canonical successor (or a pending-stage cancellation) is accepted.
func (s *OrderService) UpdateStatus(id uuid.UUID, status models.OrderStatus, note string) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, ErrTerminalStatus
	}

	if s.strict && !allowedStrict(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		event := models.StatusEvent{
			OrderID:   order.ID,
			Status:    status,
			Timestamp: now,
			Note:      note,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func allowedStrict(current, next models.OrderStatus) bool {
	if next == models.StatusCancelled {
		return current.CanCancel()
	}
	successor, ok := current.Next()
	return ok && next == successor
}

// Cancel moves a pending order to cancelled with the given reason. Orders
// past the pickup stage cannot be cancelled.
func (s *OrderService) Cancel(id uuid.UUID, reason string) (*models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanCancel() {
		return nil, ErrNotCancellable
	}

	if strings.TrimSpace(reason) == "" {
		reason = "Cancelled by store manager"
	}

	return s.UpdateStatus(id, models.StatusCancelled, reason)
}

// AddPayment appends a ledger entry. Amounts must be positive; cumulative
// overpayment is allowed and shows up as a negative balance.
func (s *OrderService) AddPayment(id uuid.UUID, amount float64, method, note string) (*models.Order, error) {
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	if strings.TrimSpace(method) == "" {
		return nil, errors.New("payment method is required")
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			OrderID: order.ID,
			Amount:  amount,
			Method:  method,
			Note:    note,
			Date:    now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("updated_at", now).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// UpdateChallan replaces the order's challan number.
func (s *OrderService) UpdateChallan(id uuid.UUID, challanNo string) (*models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"challan_no": challanNo,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return nil, err
	}

	return s.Get(id)
}

// ConvertPickup turns an HQ pickup request into a billable order. The order
// starts pending with a zero total; items are weighed and priced at the
// counter later, and the total stays frozen from that point.
func (s *OrderService) ConvertPickup(storeID, pickupID uuid.UUID, challanNo string) (*models.Order, error) {
	var pickup models.PickupRequest
	if err := s.db.First(&pickup, "id = ? AND store_id = ?", pickupID, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}

	if pickup.ConvertedOrderID != nil {
		return nil, ErrPickupConverted
	}

	now := time.Now()
	order := models.Order{
		StoreID:         storeID,
		CustomerName:    pickup.CustomerName,
		CustomerPhone:   pickup.CustomerPhone,
		CustomerAddress: pickup.CustomerAddress,
		ServiceType:     pickup.ServiceType,
		Status:          models.StatusPending,
		PickupAt:        pickup.PickupAt,
		Notes:           pickup.Notes,
		Source:          "hq",
	}
	if challanNo != "" {
		order.ChallanNo = &challanNo
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := nextOrderCode(tx, storeID, now)
		if err != nil {
			return err
		}
		order.OrderCode = code

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		event := models.StatusEvent{
			OrderID:   order.ID,
			Status:    models.StatusPending,
			Timestamp: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&models.PickupRequest{}).Where("id = ?", pickup.ID).
			Updates(map[string]interface{}{
				"converted_order_id": order.ID,
				"updated_at":         now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(order.ID)
}

type ListFilter struct {
	Status   string // status value or "all"
	Service  string // service type or "all"
	Query    string // matches order code, challan, customer name or phone
	Page     int
	PageSize int
}

// List returns one page of the store's orders, most recent first, plus the
// total count under the same filters. The three predicates are conjunctive;
// the text query matches if ANY of the four fields contains it.
func (s *OrderService) List(storeID uuid.UUID, filter ListFilter) ([]models.Order, int64, error) {
	filtered := func() *gorm.DB {
		query := s.db.Model(&models.Order{}).Where("store_id = ?", storeID)

		if filter.Status != "" && filter.Status != "all" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Service != "" && filter.Service != "all" {
			query = query.Where("service_type = ?", filter.Service)
		}
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			query = query.Where(
				"LOWER(order_code) LIKE ? OR LOWER(challan_no) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ?",
				like, like, like, "%"+filter.Query+"%",
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var orders []models.Order
	err := filtered().Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Payments").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// StatusCounts returns the per-status order counts for the tab bar, plus an
// "all" entry equal to the store's total. Recomputed on every call.
func (s *OrderService) StatusCounts(storeID uuid.UUID) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.AllStatuses)+1)
	for _, status := range models.AllStatuses {
		counts[string(status)] = 0
	}

	type row struct {
		Status models.OrderStatus
		N      int64
	}
	var rows []row
	err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as n").
		Where("store_id = ?", storeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var total int64
	for _, r := range rows {
		counts[string(r.Status)] = r.N
		total += r.N
	}
	counts["all"] = total

	return counts, nil
}

type DashboardStats struct {
	TodayOrders    int64 `json:"todayOrders"`
	Pending        int64 `json:"pending"`
	PickupAssigned int64 `json:"pickupAssigned"`
	Processing     int64 `json:"processing"`
	Ready          int64 `json:"ready"`
	DeliveredToday int64 `json:"deliveredToday"`
}

// Stats computes the dashboard KPI cards. "Today" means the current calendar
// day of the creation (or, for delivered, last update) timestamp.
func (s *OrderService) Stats(storeID uuid.UUID) (*DashboardStats, error) {
	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	stats := &DashboardStats{}
	base := func() *gorm.DB {
		return s.db.Model(&models.Order{}).Where("store_id = ?", storeID)
	}

	if err := base().Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&stats.TodayOrders).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		status models.OrderStatus
		dest   *int64
	}{
		{models.StatusPending, &stats.Pending},
		{models.StatusPickupAssigned, &stats.PickupAssigned},
		{models.StatusProcessing, &stats.Processing},
		{models.StatusReady, &stats.Ready},
	}
	for _, sc := range statusCounts {
		if err := base().Where("status = ?", sc.status).Count(sc.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := base().
		Where("status = ? AND updated_at >= ? AND updated_at < ?", models.StatusDelivered, dayStart, dayEnd).
		Count(&stats.DeliveredToday).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// TodayPickups lists orders awaiting collection with a pickup slot on the
// current calendar day.
func (s *OrderService) TodayPickups(storeID uuid.UUID, limit int) ([]models.Order, error) {
	return s.slotOrders(storeID, "pickup_at",
		[]models.OrderStatus{models.StatusPending, models.StatusPickupAssigned}, limit)
}

// TodayDeliveries lists orders ready to go out with a drop slot on the
// current calendar day.
func (s *OrderService) TodayDeliveries(storeID uuid.UUID, limit int) ([]models.Order, error) {
	return s.slotOrders(storeID, "drop_at",
		[]models.OrderStatus{models.StatusReady, models.StatusDropAssigned}, limit)
}

func (s *OrderService) slotOrders(storeID uuid.UUID, column string, statuses []models.OrderStatus, limit int) ([]models.Order, error) {
	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	if limit < 1 {
		limit = 5
	}

	var orders []models.Order
	err := s.db.
		Where("store_id = ? AND status IN ?", storeID, statuses).
		Where(column+" >= ? AND "+column+" < ?", dayStart, dayEnd).
		Order(column + " ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
