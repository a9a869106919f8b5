// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mycleaners-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type NotifyService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the morning challan digest every day at 9 AM.
func (s *NotifyService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendChallanDigest()
	})

	c.Start()
	log.Println("Notification scheduler started")
}

// NotifyOrderReady texts the customer that their order can be collected.
// Failures are logged and swallowed; a missed SMS never fails the status
// update that triggered it.
func (s *NotifyService) NotifyOrderReady(order *models.Order) {
	message := fmt.Sprintf(
		"Hi %s, your order %s is ready! Please collect it from the store or await delivery.",
		order.CustomerName, order.OrderCode)

	s.send(order, "order_ready", message)
}

// SendChallanDigest reminds the store about pending orders still missing a
// challan number, which blocks tag and invoice generation.
func (s *NotifyService) SendChallanDigest() {
	log.Println("Starting challan digest processing...")

	var stores []models.Store
	if err := s.db.Find(&stores).Error; err != nil {
		log.Printf("Failed to fetch stores: %v", err)
		return
	}

	for _, store := range stores {
		var orders []models.Order
		if err := s.db.
			Where("store_id = ? AND status = ? AND challan_no IS NULL", store.ID, models.StatusPending).
			Find(&orders).Error; err != nil {
			log.Printf("Store %s: failed to fetch pending orders: %v", store.ID, err)
			continue
		}

		if len(orders) == 0 {
			continue
		}

		codes := make([]string, 0, len(orders))
		for _, o := range orders {
			codes = append(codes, o.OrderCode)
		}
		message := fmt.Sprintf(
			"%s: %d pending order(s) missing challan numbers: %s",
			store.Name, len(orders), strings.Join(codes, ", "))

		// Digest goes to the store's own phone, logged against each order.
		for i := range orders {
			orders[i].CustomerPhone = store.Phone
			s.send(&orders[i], "challan_digest", message)
		}
	}

	log.Println("Challan digest processing completed")
}

func (s *NotifyService) send(order *models.Order, notifType, message string) {
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(order.CustomerPhone, "+") {
		to = "whatsapp:" + order.CustomerPhone
		channel = "whatsapp"
	} else {
		to = order.CustomerPhone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message for order %s: %v", order.OrderCode, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent for order %s, SID: %s", order.OrderCode, *resp.Sid)
	} else {
		log.Printf("Message sent for order %s, but no SID returned", order.OrderCode)
	}

	notifLog := models.NotificationLog{
		StoreID:      order.StoreID,
		OrderID:      order.ID,
		Type:         notifType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&notifLog).Error; err != nil {
		log.Printf("Failed to log notification for order %s: %v", order.OrderCode, err)
	}
}
