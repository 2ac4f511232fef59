package routes

import (
	"fmt"
	"time"

	"hostelhub-server/config"
	"hostelhub-server/models"
	"hostelhub-server/services"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

type CreatePaymentInput struct {
	BookingID      uint   `json:"bookingID" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=RENT MONTHLY_RENT DEPOSIT OTHER"`
	Method         string `json:"method" validate:"required,oneof=CASH BANK_TRANSFER CHEQUE ONLINE CARD"`
	Month          string `json:"month"`
	Year           int    `json:"year"`
	Notes          string `json:"notes"`
	AllowDuplicate bool   `json:"allowDuplicate"`
}

// CreatePayment records a manual payment entry against a booking. Rent
// payments for a month that already has an active rent record come back as
// a 409 warning which the caller can override with allowDuplicate.
func CreatePayment(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreatePaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amount, amountErr := decimal.NewFromString(input.Amount)
	if amountErr != nil || !amount.IsPositive() {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Amount must be greater than zero", ctx)
		return
	}

	var booking models.Booking
	res := storage.DB.Preload("Payments").Where("id = ?", input.BookingID).Find(&booking)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	// Guests may only record payments against their own booking
	if !ownerOrStaff(claims, booking.UserID) {
		utils.CreateForbidden(ctx)
		return
	}

	// A booking without a hostel is corrupt; refuse to write against it.
	if booking.HostelID == 0 {
		config.LogError("routes", "CreatePayment", "booking missing hostelID", booking.ID, fmt.Errorf("booking %d has no hostel", booking.ID))
		utils.CreateError(iris.StatusUnprocessableEntity, "Invalid Booking", "Booking is missing its hostel reference", ctx)
		return
	}

	candidate := services.RentCandidate{Type: input.Type, Month: input.Month, Year: input.Year}
	if dup := services.DetectDuplicateRentEntry(booking.Payments, candidate); dup != nil && !input.AllowDuplicate {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{
			"warning":         "duplicate_rent_entry",
			"message":         fmt.Sprintf("A rent payment for %s %d already exists on this booking", input.Month, input.Year),
			"existingPayment": dup,
		})
		return
	}

	payment := models.Payment{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		HostelID:      booking.HostelID,
		Amount:        amount,
		Type:          input.Type,
		Method:        input.Method,
		Status:        models.PaymentPending,
		Month:         input.Month,
		Year:          input.Year,
		Notes:         input.Notes,
		ReceiptNumber: "RCP-" + uuid.NewString()[:8],
	}

	if err := storage.DB.Create(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "payment.create", "payment", payment.ID, nil, payment)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(payment)
}

func GetPaymentsByBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	bookingID := ctx.Params().Get("bookingID")

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}
	if !ownerOrStaff(claims, booking.UserID) {
		utils.CreateForbidden(ctx)
		return
	}

	var payments []models.Payment
	res := storage.DB.Preload("User").Where("booking_id = ?", bookingID).Order("created_at DESC").Find(&payments)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(payments)
}

func GetMyPayments(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var payments []models.Payment
	res := storage.DB.Where("user_id = ?", claims.ID).Order("created_at DESC").Find(&payments)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(payments)
}

// ApprovePayment marks a single payment PAID and emails the receipt.
func ApprovePayment(ctx iris.Context) {
	approverID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var payment models.Payment
	if err := storage.DB.Preload("User").First(&payment, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Payment not found", ctx)
		return
	}

	if !services.CanTransitionPayment(payment.Status, models.PaymentPaid) {
		utils.CreateError(iris.StatusConflict, "Conflict", "Payment is not pending approval", ctx)
		return
	}

	before := payment.Status
	now := time.Now()
	payment.Status = models.PaymentPaid
	payment.PaidAt = &now
	payment.ReviewedByID = &approverID
	payment.ReviewedAt = &now

	if err := storage.DB.Save(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "payment.approve", "payment", payment.ID, before, payment.Status)

	ns := services.NewNotificationService(storage.DB)
	go ns.NotifyPaymentStatus(&payment)

	if payment.User != nil && payment.User.Email != "" {
		mailer := services.NewMailer()
		go func(p models.Payment, email string) {
			if err := mailer.SendReceiptMail(&p, email, p.ReceiptURL); err != nil {
				config.LogError("routes", "ApprovePayment", "receipt mail", p.ID, err)
			}
		}(payment, payment.User.Email)
	}

	ctx.JSON(payment)
}

type RejectPaymentInput struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// RejectPayment moves a payment to REJECTED; a reason note is mandatory.
func RejectPayment(ctx iris.Context) {
	reviewerID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input RejectPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var payment models.Payment
	if err := storage.DB.First(&payment, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Payment not found", ctx)
		return
	}

	if !services.CanTransitionPayment(payment.Status, models.PaymentRejected) {
		utils.CreateError(iris.StatusConflict, "Conflict", "Payment is not pending review", ctx)
		return
	}

	before := payment.Status
	now := time.Now()
	payment.Status = models.PaymentRejected
	payment.RejectionReason = input.Reason
	payment.ReviewedByID = &reviewerID
	payment.ReviewedAt = &now

	if err := storage.DB.Save(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "payment.reject", "payment", payment.ID, before, payment.Status)

	ns := services.NewNotificationService(storage.DB)
	go ns.NotifyPaymentStatus(&payment)

	ctx.JSON(payment)
}

type BulkApproveInput struct {
	PaymentIDs []uint `json:"paymentIds" validate:"required,min=1"`
}

// BulkApprovePayments approves a batch of payments atomically.
func BulkApprovePayments(ctx iris.Context) {
	approverID := ctx.Values().Get("userID").(uint)

	var input BulkApproveInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	count, err := services.BulkApprovePayments(storage.DB, input.PaymentIDs, approverID)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "message": err.Error()})
		return
	}

	utils.Audit(ctx, "payment.bulk_approve", "payment", 0, nil, input.PaymentIDs)

	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("%d payments approved", count),
	})
}

type UploadReceiptInput struct {
	Image string `json:"image" validate:"required"`
}

// UploadReceipt attaches a scanned receipt image to a payment.
func UploadReceipt(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input UploadReceiptInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var payment models.Payment
	if err := storage.DB.First(&payment, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Payment not found", ctx)
		return
	}

	if !ownerOrStaff(claims, payment.UserID) {
		utils.CreateForbidden(ctx)
		return
	}

	url, uploadErr := storage.UploadReceiptImage(input.Image, "receipts/"+payment.ReceiptNumber)
	if uploadErr != nil {
		config.LogError("routes", "UploadReceipt", "cloudinary", payment.ID, uploadErr)
		utils.CreateError(iris.StatusBadGateway, "Upload Error", "Could not store receipt image", ctx)
		return
	}

	if err := storage.DB.Model(&payment).Update("receipt_url", url).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"receiptURL": url})
}

// GetReceiptLink issues a short-lived signed link for sharing a receipt.
func GetReceiptLink(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid payment id", ctx)
		return
	}

	var payment models.Payment
	if dbErr := storage.DB.First(&payment, id).Error; dbErr != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Payment not found", ctx)
		return
	}

	if !ownerOrStaff(claims, payment.UserID) {
		utils.CreateForbidden(ctx)
		return
	}
	if payment.ReceiptURL == "" {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Payment has no receipt attached", ctx)
		return
	}

	token, tokenErr := utils.CreateReceiptToken(payment.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"token": token, "expiresInSeconds": 900})
}

// DownloadReceipt resolves a signed receipt token to the stored receipt URL.
// No auth middleware here; the token itself is the credential.
func DownloadReceipt(ctx iris.Context) {
	token := ctx.URLParam("token")
	if token == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "token query parameter required", ctx)
		return
	}

	paymentID, err := utils.ParseReceiptToken(token)
	if err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Invalid Token", "Receipt link is invalid or expired", ctx)
		return
	}

	var payment models.Payment
	if dbErr := storage.DB.First(&payment, paymentID).Error; dbErr != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if payment.ReceiptURL == "" {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.Redirect(payment.ReceiptURL, iris.StatusFound)
}
