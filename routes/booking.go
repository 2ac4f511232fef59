package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/services"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

type CreateBookingInput struct {
	RoomID          uint      `json:"roomID" validate:"required"`
	CheckIn         time.Time `json:"checkIn" validate:"required"`
	Months          int       `json:"months" validate:"required,gte=1,lte=24"`
	SecurityDeposit string    `json:"securityDeposit"`
	Note            string    `json:"note"`
}

// CreateBooking opens a PENDING booking for the authenticated guest. Total
// rent is derived from the room's monthly rate; the financial terms freeze
// once the booking is confirmed.
func CreateBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, input.RoomID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	if room.Status != models.RoomAvailable {
		utils.CreateError(iris.StatusConflict, "Conflict", "Room is not available", ctx)
		return
	}

	deposit := decimal.Zero
	if input.SecurityDeposit != "" {
		parsed, err := decimal.NewFromString(input.SecurityDeposit)
		if err != nil || parsed.IsNegative() {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "securityDeposit must be a non-negative amount", ctx)
			return
		}
		deposit = parsed
	}

	totalAmount := room.MonthlyRent.Mul(decimal.NewFromInt(int64(input.Months)))

	booking := models.Booking{
		UserID:          claims.ID,
		RoomID:          room.ID,
		HostelID:        room.HostelID,
		Status:          models.BookingPending,
		TotalAmount:     totalAmount,
		SecurityDeposit: deposit,
		CheckIn:         input.CheckIn,
		Note:            input.Note,
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Room").Preload("User").First(&booking, booking.ID)
	ctx.JSON(booking)
}

func GetMyBookings(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var bookings []models.Booking
	res := storage.DB.Preload("Room").Preload("Payments").
		Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

func GetBookingsByHostel(ctx iris.Context) {
	hostelID := ctx.Params().Get("hostelID")

	var bookings []models.Booking
	res := storage.DB.Preload("Room").Preload("User").Preload("Payments").
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

func GetBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var booking models.Booking
	res := storage.DB.Preload("Room").Preload("User").Preload("Payments").Where("id = ?", id).Find(&booking)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if !ownerOrStaff(claims, booking.UserID) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(booking)
}

// GetBookingLedger returns the reconciliation figures for one booking:
// total liability, settled funds, residual and completion rate.
func GetBookingLedger(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var booking models.Booking
	res := storage.DB.Preload("Payments").Where("id = ?", id).Find(&booking)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if !ownerOrStaff(claims, booking.UserID) {
		utils.CreateForbidden(ctx)
		return
	}

	totals := services.ComputeLedgerTotals(&booking)
	ctx.JSON(iris.Map{
		"bookingID": booking.ID,
		"ledger":    totals,
	})
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED"`
}

// UpdateBookingStatus moves a booking through its lifecycle. Confirm marks
// the room occupied; check-out and cancel free it again.
func UpdateBookingStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Room").First(&booking, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	if !services.CanTransitionBooking(booking.Status, input.Status) {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Cannot move booking from "+booking.Status+" to "+input.Status, ctx)
		return
	}

	before := booking.Status
	booking.Status = input.Status
	if input.Status == models.BookingCheckedOut {
		now := time.Now()
		booking.CheckOut = &now
	}

	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Keep the room status in step with the booking
	switch input.Status {
	case models.BookingConfirmed, models.BookingCheckedIn:
		storage.DB.Model(&models.Room{}).Where("id = ?", booking.RoomID).Update("status", models.RoomOccupied)
	case models.BookingCheckedOut:
		storage.DB.Model(&models.Room{}).Where("id = ?", booking.RoomID).Update("status", models.RoomCleaning)
	case models.BookingCancelled:
		storage.DB.Model(&models.Room{}).Where("id = ?", booking.RoomID).Update("status", models.RoomAvailable)
	}

	utils.Audit(ctx, "booking.status", "booking", booking.ID, before, booking.Status)

	ns := services.NewNotificationService(storage.DB)
	go ns.NotifyBookingStatus(&booking)

	ctx.JSON(booking)
}

// CancelBooking lets a guest withdraw their own booking before check-in.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	if booking.UserID != userID {
		utils.CreateForbidden(ctx)
		return
	}

	if !services.CanTransitionBooking(booking.Status, models.BookingCancelled) {
		utils.CreateError(iris.StatusConflict, "Conflict", "Booking can no longer be cancelled", ctx)
		return
	}

	booking.Status = models.BookingCancelled
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Model(&models.Room{}).Where("id = ?", booking.RoomID).Update("status", models.RoomAvailable)

	ctx.JSON(booking)
}
