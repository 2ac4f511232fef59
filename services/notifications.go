package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hostelhub-server/config"
	"hostelhub-server/models"

	"gorm.io/gorm"
)

const expoPushEndpoint = "https://exp.host/--/api/v2/push/send"

// NotificationService records in-app notifications and mirrors them to the
// user's registered push tokens when notifications are enabled.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type expoPushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (ns *NotificationService) pushTokens(userID uint) []string {
	var user models.User
	if err := ns.db.First(&user, userID).Error; err != nil {
		return nil
	}
	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil
	}
	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil
	}
	return tokens
}

func (ns *NotificationService) sendPush(token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(expoPushMessage{To: token, Title: title, Body: body, Data: data})
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Post(expoPushEndpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("push send failed with status %d", res.StatusCode)
	}
	return nil
}

// Notify stores an in-app notification and fans it out to push tokens.
func (ns *NotificationService) Notify(userID uint, notifType, title, message, refType string, refID uint) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := ns.db.Create(&notification).Error; err != nil {
		config.LogError("services", "Notify", "create notification", userID, err)
		return
	}

	data := map[string]string{
		"type":    notifType,
		"refType": refType,
		"refID":   fmt.Sprint(refID),
	}
	for _, token := range ns.pushTokens(userID) {
		if err := ns.sendPush(token, title, message, data); err != nil {
			config.LogError("services", "Notify", "push send", token, err)
		}
	}
}

// NotifyBookingStatus tells a guest their booking moved to a new status.
func (ns *NotificationService) NotifyBookingStatus(booking *models.Booking) {
	ns.Notify(booking.UserID, "booking_status", "Booking Update",
		fmt.Sprintf("Your booking #%d is now %s", booking.ID, booking.Status),
		"booking", booking.ID)
}

// NotifyComplaintUpdate tells the complainant about a status change.
func (ns *NotificationService) NotifyComplaintUpdate(complaint *models.Complaint) {
	ns.Notify(complaint.UserID, "complaint_update", "Complaint Update",
		fmt.Sprintf("Your complaint %q is now %s", complaint.Title, complaint.Status),
		"complaint", complaint.ID)
}

// NotifyPaymentStatus tells the payer their payment was reviewed.
func (ns *NotificationService) NotifyPaymentStatus(payment *models.Payment) {
	msg := fmt.Sprintf("Your payment of %s %s is now %s", payment.Amount.StringFixed(2), payment.Currency, payment.Status)
	if payment.Status == models.PaymentRejected && payment.RejectionReason != "" {
		msg += ": " + payment.RejectionReason
	}
	ns.Notify(payment.UserID, "payment_status", "Payment Update", msg, "payment", payment.ID)
}
