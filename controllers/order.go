// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"mycleaners-backend/config"
	"mycleaners-backend/models"
	"mycleaners-backend/services"
	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// notifier is set from main; nil disables customer SMS.
var notifier *services.NotifyService

func SetNotifier(n *services.NotifyService) {
	notifier = n
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.DB, config.StrictStatusFlow())
}

type UpdateStatusInput struct {
	ToStatus models.OrderStatus `json:"toStatus" binding:"required"`
	Note     string             `json:"note"`
}

type CancelOrderInput struct {
	Reason string `json:"reason"`
}

type AddPaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
	Note   string  `json:"note"`
}

type UpdateChallanInput struct {
	ChallanNo string `json:"challanNo" binding:"required"`
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrPickupNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrTerminalStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPickupConverted):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// CreateOrder creates a walk-in order for the store
func CreateOrder(c *gin.Context) {
	storeID, exists := c.Get("storeId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Store ID not found in context")
		return
	}

	storeUUID, err := uuid.Parse(storeID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid store ID format")
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := orderService().Create(storeUUID, input)
	if err != nil {
		// Service-detail validation failures are the caller's to fix.
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Walk-in order created successfully",
		"order":   order,
	})
}

// GetOrders returns one page of orders with the total count under the
// current status/service/search filters
func GetOrders(c *gin.Context) {
	storeID, exists := c.Get("storeId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Store ID not found in context")
		return
	}

	storeUUID, err := uuid.Parse(storeID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid store ID format")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := services.ListFilter{
		Status:   c.DefaultQuery("status", "all"),
		Service:  c.DefaultQuery("service", "all"),
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}

	orders, total, err := orderService().List(storeUUID, filter)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"totalCount": total,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// GetOrder retrieves a specific order by ID
func GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := orderService().Get(orderUUID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"balance": order.Balance(),
	})
}

// UpdateOrderStatus moves an order to a new lifecycle status
func UpdateOrderStatus(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !input.ToStatus.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: "+string(input.ToStatus))
		return
	}

	order, err := orderService().UpdateStatus(orderUUID, input.ToStatus, input.Note)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	if order.Status == models.StatusReady && notifier != nil {
		notifier.NotifyOrderReady(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated to " + order.Status.Label(),
		"order":   order,
	})
}

// CancelOrder cancels a pending order with a reason
func CancelOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input CancelOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := orderService().Cancel(orderUUID, input.Reason)
	if err != nil {
		if errors.Is(err, services.ErrNotCancellable) {
			utils.RespondWithError(c, http.StatusConflict, "Cannot cancel order after pickup stage")
			return
		}
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}

// AddPayment records a payment against an order
func AddPayment(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input AddPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment amount must be positive")
		return
	}

	order, err := orderService().AddPayment(orderUUID, input.Amount, input.Method, input.Note)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment added successfully",
		"order":   order,
		"balance": order.Balance(),
	})
}

// UpdateChallan replaces the challan number on an order
func UpdateChallan(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateChallanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := orderService().UpdateChallan(orderUUID, input.ChallanNo)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Challan number updated",
		"order":   order,
	})
}

// GetStatusCounts returns the per-status counts for the orders tab bar
func GetStatusCounts(c *gin.Context) {
	storeID, exists := c.Get("storeId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Store ID not found in context")
		return
	}

	storeUUID, err := uuid.Parse(storeID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid store ID format")
		return
	}

	counts, err := orderService().StatusCounts(storeUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute status counts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
