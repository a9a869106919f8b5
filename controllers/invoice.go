// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"mycleaners-backend/config"
	"mycleaners-backend/models"
	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateInvoice snapshots an order's amounts into a printable invoice.
// Orders without a challan number still get an invoice, flagged for
// follow-up since the physical receipt is missing.
func GenerateInvoice(c *gin.Context) {
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

	paid := order.TotalAmount - order.Balance()

	invoice := models.Invoice{
		StoreID:        storeUUID,
		OrderID:        order.ID,
		OrderCode:      order.OrderCode,
		ChallanNo:      order.ChallanNo,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		InvoiceDate:    time.Now(),
		Total:          order.TotalAmount,
		Paid:           paid,
		Balance:        order.Balance(),
		MissingChallan: order.ChallanNo == nil,
	}

	invoice.InvoiceNumber = "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the store
func GetInvoices(c *gin.Context) {
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

	var invoices []models.Invoice
	if err := config.DB.
		Where("store_id = ?", storeUUID).
		Order("invoice_date DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
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

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.
		Where("store_id = ? AND id = ?", storeUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}
