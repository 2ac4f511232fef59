package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

type CreateMaintenanceInput struct {
	RoomID      uint   `json:"roomID" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

// CreateMaintenance opens a maintenance ticket and takes the room out of
// service.
func CreateMaintenance(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateMaintenanceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, input.RoomID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	ticket := models.Maintenance{
		RoomID:       room.ID,
		HostelID:     room.HostelID,
		ReportedByID: claims.ID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.MaintenanceOpen,
	}

	if err := storage.DB.Create(&ticket).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Model(&room).Update("status", models.RoomMaintenance)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(ticket)
}

func GetMaintenanceTickets(ctx iris.Context) {
	status := ctx.URLParamDefault("status", "")
	hostelID := ctx.URLParamDefault("hostelID", "")

	query := storage.DB.Preload("Room").Preload("ReportedBy").Preload("AssignedTo").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}

	var tickets []models.Maintenance
	if err := query.Find(&tickets).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(tickets)
}

type UpdateMaintenanceInput struct {
	Status       string `json:"status" validate:"required,oneof=IN_PROGRESS DONE CANCELLED"`
	AssignedToID *uint  `json:"assignedToID"`
	Cost         string `json:"cost"`
}

// UpdateMaintenance advances a ticket; closing it as DONE records the cost
// and returns the room to the cleaning queue.
func UpdateMaintenance(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateMaintenanceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var ticket models.Maintenance
	if err := storage.DB.First(&ticket, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Maintenance ticket not found", ctx)
		return
	}

	if ticket.Status == models.MaintenanceDone || ticket.Status == models.MaintenanceCancelled {
		utils.CreateError(iris.StatusConflict, "Conflict", "Maintenance ticket is already closed", ctx)
		return
	}

	before := ticket.Status
	ticket.Status = input.Status
	if input.AssignedToID != nil {
		ticket.AssignedToID = input.AssignedToID
	}
	if input.Cost != "" {
		cost, err := decimal.NewFromString(input.Cost)
		if err != nil || cost.IsNegative() {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "cost must be a non-negative amount", ctx)
			return
		}
		ticket.Cost = cost
	}
	if input.Status == models.MaintenanceDone {
		now := time.Now()
		ticket.CompletedAt = &now
	}

	if err := storage.DB.Save(&ticket).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.Status == models.MaintenanceDone || input.Status == models.MaintenanceCancelled {
		storage.DB.Model(&models.Room{}).Where("id = ?", ticket.RoomID).Update("status", models.RoomCleaning)
	}

	utils.Audit(ctx, "maintenance.status", "maintenance", ticket.ID, before, ticket.Status)
	ctx.JSON(ticket)
}
