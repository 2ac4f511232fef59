package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateLaundryLogInput struct {
	RoomID       uint      `json:"roomID" validate:"required"`
	StaffID      *uint     `json:"staffID"`
	ScheduledFor time.Time `json:"scheduledFor" validate:"required"`
	ItemCount    int       `json:"itemCount" validate:"gte=0"`
	Notes        string    `json:"notes"`
}

func CreateLaundryLog(ctx iris.Context) {
	var input CreateLaundryLogInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, input.RoomID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	entry := models.LaundryLog{
		RoomID:       room.ID,
		HostelID:     room.HostelID,
		StaffID:      input.StaffID,
		Status:       models.LogScheduled,
		ScheduledFor: input.ScheduledFor,
		ItemCount:    input.ItemCount,
		Notes:        input.Notes,
	}

	if err := storage.DB.Create(&entry).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(entry)
}

func GetLaundryLogs(ctx iris.Context) {
	roomID := ctx.URLParamDefault("roomID", "")
	status := ctx.URLParamDefault("status", "")

	query := storage.DB.Preload("Room").Preload("Staff").Order("scheduled_for DESC")
	if roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []models.LaundryLog
	if err := query.Find(&logs).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(logs)
}

// CompleteLaundryLog mirrors CompleteCleaningLog for laundry cycles.
func CompleteLaundryLog(ctx iris.Context) {
	staffID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input CompleteLogInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var entry models.LaundryLog
	if err := storage.DB.First(&entry, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Laundry log not found", ctx)
		return
	}

	if entry.Status != models.LogScheduled {
		utils.CreateError(iris.StatusConflict, "Conflict", "Laundry log is already closed", ctx)
		return
	}

	now := time.Now()
	entry.Status = input.Status
	entry.CompletedAt = &now
	entry.StaffID = &staffID
	if input.Notes != "" {
		entry.Notes = input.Notes
	}

	if err := storage.DB.Save(&entry).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.Status == models.LogDone {
		storage.DB.Model(&models.Room{}).Where("id = ?", entry.RoomID).Update("last_laundry_at", now)
	}

	ctx.JSON(entry)
}
