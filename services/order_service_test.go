package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mycleaners-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open db")

	err = db.AutoMigrate(
		&models.Store{},
		&models.Order{},
		&models.OrderItem{},
		&models.StatusEvent{},
		&models.Payment{},
		&models.PickupRequest{},
	)
	require.NoError(t, err, "migrate")

	return db
}

func seedStore(t *testing.T, db *gorm.DB) uuid.UUID {
	store := models.Store{
		ID:    uuid.New(),
		Name:  "MyCleaners Koramangala",
		Code:  "MC-KOR-001",
		Zone:  "South Bangalore",
		Phone: "+91 9876543210",
	}
	require.NoError(t, db.Create(&store).Error)
	return store.ID
}

func laundryInput(weight float64, pieces int) CreateOrderInput {
	return CreateOrderInput{
		CustomerName:  "Priya Sharma",
		CustomerPhone: "+91 9876543211",
		ServiceType:   models.ServiceLaundry,
		Weight:        weight,
		Pieces:        pieces,
	}
}

func TestCreateLaundryOrder(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	assert.Equal(t, 400.0, order.TotalAmount, "5kg at 80/kg")
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.StatusPending, order.StatusHistory[0].Status)
	assert.Empty(t, order.Payments)
	assert.Equal(t, "walkin", order.Source)
}

func TestCreateDrycleanOrderPricing(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, CreateOrderInput{
		CustomerName:  "Amit Patel",
		CustomerPhone: "+91 9876543212",
		ServiceType:   models.ServiceDryclean,
		Items: []OrderItemInput{
			{Name: "Suit (2 Piece)", Quantity: 1, Price: 500},
			{Name: "Blazer", Quantity: 2, Price: 350},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)
}

func TestCreateHomeCleaningOrderPricing(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, CreateOrderInput{
		CustomerName:  "Ananya Krishnan",
		CustomerPhone: "+91 9876543215",
		ServiceType:   models.ServiceHomeCleaning,
		FlatPrice:     1500,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, order.TotalAmount)
	assert.Empty(t, order.Items)
}

func TestCreateValidatesServiceDetails(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"laundry without weight", CreateOrderInput{
			CustomerName: "A", CustomerPhone: "+919876543211",
			ServiceType: models.ServiceLaundry,
		}},
		{"dryclean without items", CreateOrderInput{
			CustomerName: "A", CustomerPhone: "+919876543211",
			ServiceType: models.ServiceDryclean,
		}},
		{"home cleaning without price", CreateOrderInput{
			CustomerName: "A", CustomerPhone: "+919876543211",
			ServiceType: models.ServiceHomeCleaning,
		}},
		{"missing customer name", CreateOrderInput{
			CustomerPhone: "+919876543211",
			ServiceType:   models.ServiceLaundry, Weight: 5,
		}},
		{"bad phone", CreateOrderInput{
			CustomerName: "A", CustomerPhone: "not-a-phone",
			ServiceType: models.ServiceLaundry, Weight: 5,
		}},
		{"unknown service type", CreateOrderInput{
			CustomerName: "A", CustomerPhone: "+919876543211",
			ServiceType: "ironing",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(storeID, tc.input)
			assert.Error(t, err)
		})
	}
}

func TestOrderCodeSequence(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	year := time.Now().Year()
	for n := 1; n <= 3; n++ {
		order, err := svc.Create(storeID, laundryInput(float64(n), n))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("MC-%d-%03d", year, n), order.OrderCode)
	}
}

func TestUpdateStatusAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	order, err = svc.UpdateStatus(order.ID, models.StatusProcessing, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)

	// Permissive mode lets a manager jump straight to delivered.
	order, err = svc.UpdateStatus(order.ID, models.StatusDelivered, "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusDelivered, order.Status)
	require.Len(t, order.StatusHistory, 3)
	assert.Equal(t, models.StatusPending, order.StatusHistory[0].Status)
	assert.Equal(t, models.StatusProcessing, order.StatusHistory[1].Status)
	assert.Equal(t, models.StatusDelivered, order.StatusHistory[2].Status)

	for i := 1; i < len(order.StatusHistory); i++ {
		assert.False(t, order.StatusHistory[i].Timestamp.Before(order.StatusHistory[i-1].Timestamp),
			"history timestamps must be non-decreasing")
	}

	// Last history entry always mirrors the current status.
	assert.Equal(t, order.Status, order.StatusHistory[len(order.StatusHistory)-1].Status)
}

func TestUpdateStatusRejectsTerminalOrders(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.StatusDelivered, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.StatusProcessing, "")
	assert.ErrorIs(t, err, ErrTerminalStatus)

	got, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)
	assert.Len(t, got.StatusHistory, 2)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	seedStore(t, db)
	svc := NewOrderService(db, false)

	_, err := svc.UpdateStatus(uuid.New(), models.StatusProcessing, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStrictModeEnforcesSuccessor(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, true)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	// Skipping ahead is rejected.
	_, err = svc.UpdateStatus(order.ID, models.StatusReady, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The canonical successor is accepted.
	order, err = svc.UpdateStatus(order.ID, models.StatusPickupAssigned, "")
	require.NoError(t, err)

	// Moving backward is rejected.
	_, err = svc.UpdateStatus(order.ID, models.StatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Cancellation past pending is rejected even in strict mode.
	_, err = svc.UpdateStatus(order.ID, models.StatusCancelled, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStrictModeAllowsPendingCancellation(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, true)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	order, err = svc.UpdateStatus(order.ID, models.StatusCancelled, "customer request")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, order.Status)
}

func TestCancelOrder(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(order.ID, "Customer requested cancellation")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	require.Len(t, cancelled.StatusHistory, 2)
	assert.Equal(t, "Customer requested cancellation", cancelled.StatusHistory[1].Note)
}

func TestCancelDefaultsEmptyReason(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(order.ID, "  ")
	require.NoError(t, err)
	assert.NotEmpty(t, cancelled.StatusHistory[1].Note)
}

func TestCancelRejectedPastPending(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.StatusPickupAssigned, "")
	require.NoError(t, err)

	_, err = svc.Cancel(order.ID, "too late")
	assert.ErrorIs(t, err, ErrNotCancellable)

	// Terminal orders are equally not cancellable, and stay unchanged.
	_, err = svc.UpdateStatus(order.ID, models.StatusDelivered, "")
	require.NoError(t, err)
	_, err = svc.Cancel(order.ID, "way too late")
	assert.ErrorIs(t, err, ErrNotCancellable)

	got, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)

	_, err = svc.Cancel(uuid.New(), "ghost")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddPaymentBalance(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	// 450 total: 5.625kg at 80/kg
	order, err := svc.Create(storeID, laundryInput(5.625, 12))
	require.NoError(t, err)
	require.Equal(t, 450.0, order.TotalAmount)

	order, err = svc.AddPayment(order.ID, 200, "Cash", "")
	require.NoError(t, err)

	require.Len(t, order.Payments, 1)
	assert.Equal(t, 250.0, order.Balance())

	// Overpayment is recorded, balance goes negative.
	order, err = svc.AddPayment(order.ID, 300, "UPI", "final settlement")
	require.NoError(t, err)
	assert.Equal(t, -50.0, order.Balance())
}

func TestAddPaymentValidation(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)

	_, err = svc.AddPayment(order.ID, 0, "Cash", "")
	assert.Error(t, err)

	_, err = svc.AddPayment(order.ID, -10, "Cash", "")
	assert.Error(t, err)

	_, err = svc.AddPayment(order.ID, 100, "", "")
	assert.Error(t, err)

	_, err = svc.AddPayment(uuid.New(), 100, "Cash", "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateChallan(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, laundryInput(5, 10))
	require.NoError(t, err)
	assert.Nil(t, order.ChallanNo)

	order, err = svc.UpdateChallan(order.ID, "CH-042")
	require.NoError(t, err)
	require.NotNil(t, order.ChallanNo)
	assert.Equal(t, "CH-042", *order.ChallanNo)

	_, err = svc.UpdateChallan(uuid.New(), "CH-001")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func seedMixedOrders(t *testing.T, svc *OrderService, storeID uuid.UUID) {
	challan := func(order *models.Order, no string) {
		_, err := svc.UpdateChallan(order.ID, no)
		require.NoError(t, err)
	}

	o1, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Priya Sharma", CustomerPhone: "+91 9876543211",
		ServiceType: models.ServiceLaundry, Weight: 5.5, Pieces: 12,
	})
	require.NoError(t, err)
	challan(o1, "CH-001")

	o2, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Amit Patel", CustomerPhone: "+91 9876543212",
		ServiceType: models.ServiceDryclean,
		Items:       []OrderItemInput{{Name: "Suit (2 Piece)", Quantity: 1, Price: 500}},
	})
	require.NoError(t, err)
	challan(o2, "CH-002")
	_, err = svc.UpdateStatus(o2.ID, models.StatusPickupAssigned, "")
	require.NoError(t, err)

	o3, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Sneha Reddy", CustomerPhone: "+91 9876543213",
		ServiceType: models.ServiceLaundry, Weight: 4.2, Pieces: 8,
	})
	require.NoError(t, err)
	challan(o3, "CH-003")
	_, err = svc.UpdateStatus(o3.ID, models.StatusProcessing, "")
	require.NoError(t, err)

	o4, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Vikram Singh", CustomerPhone: "+91 9876543214",
		ServiceType: models.ServiceHomeCleaning, FlatPrice: 1500,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o4.ID, models.StatusProcessing, "")
	require.NoError(t, err)

	o5, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Suresh Menon", CustomerPhone: "+91 9876543218",
		ServiceType: models.ServiceLaundry, Weight: 3.5, Pieces: 7,
	})
	require.NoError(t, err)
	_, err = svc.Cancel(o5.ID, "Customer requested cancellation")
	require.NoError(t, err)
}

func TestStatusCountsSumToTotal(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	counts, err := svc.StatusCounts(storeID)
	require.NoError(t, err)

	var sum int64
	for _, status := range models.AllStatuses {
		sum += counts[string(status)]
	}
	assert.Equal(t, counts["all"], sum)
	assert.Equal(t, int64(5), counts["all"])
	assert.Equal(t, int64(1), counts["pending"])
	assert.Equal(t, int64(2), counts["processing"])
	assert.Equal(t, int64(1), counts["cancelled"])
	assert.Equal(t, int64(0), counts["delivered"])
}

func TestListFilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	orders, total, err := svc.List(storeID, ListFilter{Status: "processing", Service: "all"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	for _, o := range orders {
		assert.Equal(t, models.StatusProcessing, o.Status)
	}
}

func TestListFilterBySearch(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	// Challan match, other filters permissive.
	orders, total, err := svc.List(storeID, ListFilter{Status: "all", Service: "all", Query: "CH-002"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Amit Patel", orders[0].CustomerName)

	// Case-insensitive customer name match.
	_, total, err = svc.List(storeID, ListFilter{Query: "sneha"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Raw phone digits match.
	_, total, err = svc.List(storeID, ListFilter{Query: "9876543214"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Order code match.
	_, total, err = svc.List(storeID, ListFilter{Query: "mc-"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestListFiltersAreConjunctive(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	// Two orders are processing, only one of them is laundry.
	orders, total, err := svc.List(storeID, ListFilter{
		Status:  "processing",
		Service: "laundry",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Sneha Reddy", orders[0].CustomerName)
}

func TestListPaginationAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	orders, total, err := svc.List(storeID, ListFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, orders, 2)

	orders, _, err = svc.List(storeID, ListFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestConvertPickup(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	pickupAt := time.Now().Add(2 * time.Hour)
	pickup := models.PickupRequest{
		StoreID:       storeID,
		CustomerName:  "Meera Iyer",
		CustomerPhone: "+91 9876543217",
		ServiceType:   models.ServiceDryclean,
		PickupAt:      &pickupAt,
	}
	require.NoError(t, db.Create(&pickup).Error)

	order, err := svc.ConvertPickup(storeID, pickup.ID, "CH-007")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "hq", order.Source)
	assert.Equal(t, 0.0, order.TotalAmount, "items are priced at the counter later")
	require.NotNil(t, order.ChallanNo)
	assert.Equal(t, "CH-007", *order.ChallanNo)
	assert.Len(t, order.StatusHistory, 1)

	// Second conversion is rejected.
	_, err = svc.ConvertPickup(storeID, pickup.ID, "CH-008")
	assert.ErrorIs(t, err, ErrPickupConverted)

	_, err = svc.ConvertPickup(storeID, uuid.New(), "CH-009")
	assert.ErrorIs(t, err, ErrPickupNotFound)
}

func TestTodayPickupsAndDeliveries(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)

	todayPickup, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Priya Sharma", CustomerPhone: "+91 9876543211",
		ServiceType: models.ServiceLaundry, Weight: 5,
		PickupAt: &now,
	})
	require.NoError(t, err)

	_, err = svc.Create(storeID, CreateOrderInput{
		CustomerName: "Amit Patel", CustomerPhone: "+91 9876543212",
		ServiceType: models.ServiceLaundry, Weight: 3,
		PickupAt: &tomorrow,
	})
	require.NoError(t, err)

	readyToday, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Vikram Singh", CustomerPhone: "+91 9876543214",
		ServiceType: models.ServiceLaundry, Weight: 4,
		DropAt: &now,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(readyToday.ID, models.StatusReady, "")
	require.NoError(t, err)

	pickups, err := svc.TodayPickups(storeID, 5)
	require.NoError(t, err)
	require.Len(t, pickups, 1)
	assert.Equal(t, todayPickup.ID, pickups[0].ID)

	deliveries, err := svc.TodayDeliveries(storeID, 5)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, readyToday.ID, deliveries[0].ID)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	seedMixedOrders(t, svc, storeID)

	delivered, err := svc.Create(storeID, laundryInput(2, 4))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(delivered.ID, models.StatusDelivered, "")
	require.NoError(t, err)

	stats, err := svc.Stats(storeID)
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TodayOrders)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.PickupAssigned)
	assert.Equal(t, int64(2), stats.Processing)
	assert.Equal(t, int64(0), stats.Ready)
	assert.Equal(t, int64(1), stats.DeliveredToday)
}

func TestTotalAmountFrozenAfterCreation(t *testing.T) {
	db := setupTestDB(t)
	storeID := seedStore(t, db)
	svc := NewOrderService(db, false)

	order, err := svc.Create(storeID, CreateOrderInput{
		CustomerName: "Amit Patel", CustomerPhone: "+91 9876543212",
		ServiceType: models.ServiceDryclean,
		Items:       []OrderItemInput{{Name: "Blazer", Quantity: 1, Price: 350}},
	})
	require.NoError(t, err)
	require.Equal(t, 350.0, order.TotalAmount)

	// Editing an item row afterwards does not touch the stored total.
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).
		Update("price", 9999).Error)

	got, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, got.TotalAmount)
}
