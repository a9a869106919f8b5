// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"mycleaners-backend/config"
	"mycleaners-backend/models"
	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

type ServiceSummary struct {
	Service models.ServiceType `json:"service"`
	Count   int64              `json:"count"`
	Revenue float64            `json:"revenue"`
}

type QuickStatistics struct {
	TotalOrders        int64   `json:"totalOrders"`
	TotalCollected     float64 `json:"totalCollected"`
	OutstandingBalance float64 `json:"outstandingBalance"`
	AvgOrderValue      float64 `json:"avgOrderValue"`
}

// GetReportAnalytics returns collections and per-service breakdowns
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
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

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfLastMonth := firstOfMonth.AddDate(0, -1, 0)

	monthCollections, err := rc.getCollections(storeUUID, firstOfMonth, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly collections")
		return
	}

	lastMonthCollections, err := rc.getCollections(storeUUID, firstOfLastMonth, firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month collections")
		return
	}

	monthGrowth := 0.0
	if lastMonthCollections > 0 {
		monthGrowth = (monthCollections - lastMonthCollections) / lastMonthCollections * 100
	}

	// Per-service breakdown over non-cancelled orders
	var serviceSummary []ServiceSummary
	if err := config.DB.Model(&models.Order{}).
		Select("service_type as service, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("store_id = ? AND status <> ?", storeUUID, models.StatusCancelled).
		Group("service_type").
		Scan(&serviceSummary).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get service breakdown")
		return
	}

	var quickStats QuickStatistics
	if err := config.DB.Model(&models.Order{}).
		Where("store_id = ? AND status <> ?", storeUUID, models.StatusCancelled).
		Count(&quickStats.TotalOrders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get order count")
		return
	}

	var billedTotal float64
	config.DB.Model(&models.Order{}).
		Where("store_id = ? AND status <> ?", storeUUID, models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&billedTotal)

	config.DB.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.store_id = ?", storeUUID).
		Select("COALESCE(SUM(payments.amount), 0)").Scan(&quickStats.TotalCollected)

	quickStats.OutstandingBalance = billedTotal - quickStats.TotalCollected
	if quickStats.TotalOrders > 0 {
		quickStats.AvgOrderValue = billedTotal / float64(quickStats.TotalOrders)
	}

	c.JSON(http.StatusOK, gin.H{
		"currentMonthCollections": monthCollections,
		"monthGrowth":             monthGrowth,
		"serviceSummary":          serviceSummary,
		"quickStats":              quickStats,
	})
}

func (rc *ReportController) getCollections(storeID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.store_id = ? AND payments.date >= ? AND payments.date < ?", storeID, from, to).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&total).Error
	return total, err
}
