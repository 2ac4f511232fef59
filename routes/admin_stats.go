package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var totalRooms, occupiedRooms int64
	storage.DB.Model(&models.Room{}).Count(&totalRooms)
	storage.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied).Count(&occupiedRooms)

	occupancyRate := 0
	if totalRooms > 0 {
		occupancyRate = int(decimal.NewFromInt(occupiedRooms).
			Div(decimal.NewFromInt(totalRooms)).
			Mul(decimal.NewFromInt(100)).
			Round(0).IntPart())
	}

	var pendingPayments int64
	storage.DB.Model(&models.Payment{}).
		Where("status IN ?", []string{models.PaymentPending, models.PaymentPartial, models.PaymentOverdue}).
		Count(&pendingPayments)

	var openComplaints int64
	storage.DB.Model(&models.Complaint{}).
		Where("status IN ?", []string{models.ComplaintPending, models.ComplaintInProgress}).
		Count(&openComplaints)

	var activeBookings int64
	storage.DB.Model(&models.Booking{}).
		Where("status IN ?", []string{models.BookingConfirmed, models.BookingCheckedIn}).
		Count(&activeBookings)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"total_rooms":      totalRooms,
			"occupied_rooms":   occupiedRooms,
			"occupancy_rate":   occupancyRate,
			"pending_payments": pendingPayments,
			"open_complaints":  openComplaints,
			"active_bookings":  activeBookings,
			"revenue_7d":       paidRevenueSince(time.Now().AddDate(0, 0, -7)),
			"revenue_30d":      paidRevenueSince(time.Now().AddDate(0, 0, -30)),
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

func paidRevenueSince(since time.Time) decimal.Decimal {
	var total decimal.Decimal
	row := storage.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND paid_at >= ?", models.PaymentPaid, since).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero
	}
	return total
}

// GET /admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
