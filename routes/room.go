package routes

import (
	"errors"

	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type CreateRoomInput struct {
	HostelID               uint   `json:"hostelID" validate:"required"`
	Number                 string `json:"number" validate:"required,max=16"`
	Floor                  int    `json:"floor"`
	Type                   string `json:"type" validate:"required,oneof=single double triple dorm"`
	Capacity               int    `json:"capacity" validate:"required,gte=1,lte=12"`
	BasePrice              string `json:"basePrice"`
	PerNightRate           string `json:"perNightRate"`
	MonthlyRent            string `json:"monthlyRent"`
	CleaningFrequencyHours int    `json:"cleaningFrequencyHours" validate:"gte=0"`
	LaundryFrequencyHours  int    `json:"laundryFrequencyHours" validate:"gte=0"`
}

func CreateRoom(ctx iris.Context) {
	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var hostel models.Hostel
	if err := storage.DB.First(&hostel, input.HostelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Hostel not found", ctx)
		return
	}

	basePrice, perNight, monthly, priceErr := parseRoomPrices(input.BasePrice, input.PerNightRate, input.MonthlyRent)
	if priceErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Room prices must be non-negative amounts", ctx)
		return
	}

	// Room numbers are unique within a hostel
	var existing int64
	storage.DB.Model(&models.Room{}).Where("hostel_id = ? AND number = ?", input.HostelID, input.Number).Count(&existing)
	if existing > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Room number already exists in this hostel", ctx)
		return
	}

	room := models.Room{
		HostelID:               input.HostelID,
		Number:                 input.Number,
		Floor:                  input.Floor,
		Type:                   input.Type,
		Capacity:               input.Capacity,
		Status:                 models.RoomAvailable,
		BasePrice:              basePrice,
		PerNightRate:           perNight,
		MonthlyRent:            monthly,
		CleaningFrequencyHours: input.CleaningFrequencyHours,
		LaundryFrequencyHours:  input.LaundryFrequencyHours,
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.create", "room", room.ID, nil, room)
	ctx.JSON(room)
}

type EditRoomInput struct {
	Number                 *string `json:"number"`
	Floor                  *int    `json:"floor"`
	Type                   *string `json:"type"`
	Capacity               *int    `json:"capacity"`
	BasePrice              *string `json:"basePrice"`
	PerNightRate           *string `json:"perNightRate"`
	MonthlyRent            *string `json:"monthlyRent"`
	CleaningFrequencyHours *int    `json:"cleaningFrequencyHours"`
	LaundryFrequencyHours  *int    `json:"laundryFrequencyHours"`
}

func EditRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	var input EditRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := room

	if input.Number != nil && *input.Number != "" {
		room.Number = *input.Number
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Type != nil && *input.Type != "" {
		if !slices.Contains([]string{"single", "double", "triple", "dorm"}, *input.Type) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown room type", ctx)
			return
		}
		room.Type = *input.Type
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Capacity must be at least 1", ctx)
			return
		}
		room.Capacity = *input.Capacity
	}
	if input.BasePrice != nil {
		amount, err := parseNonNegativeAmount(*input.BasePrice)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "basePrice must be a non-negative amount", ctx)
			return
		}
		room.BasePrice = amount
	}
	if input.PerNightRate != nil {
		amount, err := parseNonNegativeAmount(*input.PerNightRate)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "perNightRate must be a non-negative amount", ctx)
			return
		}
		room.PerNightRate = amount
	}
	if input.MonthlyRent != nil {
		amount, err := parseNonNegativeAmount(*input.MonthlyRent)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "monthlyRent must be a non-negative amount", ctx)
			return
		}
		room.MonthlyRent = amount
	}
	if input.CleaningFrequencyHours != nil && *input.CleaningFrequencyHours >= 0 {
		room.CleaningFrequencyHours = *input.CleaningFrequencyHours
	}
	if input.LaundryFrequencyHours != nil && *input.LaundryFrequencyHours >= 0 {
		room.LaundryFrequencyHours = *input.LaundryFrequencyHours
	}

	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.edit", "room", room.ID, before, room)
	ctx.JSON(room)
}

func GetRooms(ctx iris.Context) {
	hostelID := ctx.URLParamDefault("hostelID", "")
	status := ctx.URLParamDefault("status", "")
	roomType := ctx.URLParamDefault("type", "")

	query := storage.DB.Order("number ASC")
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if roomType != "" {
		query = query.Where("type = ?", roomType)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rooms)
}

func GetRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	res := storage.DB.Preload("Hostel").Where("id = ?", id).Find(&room)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(room)
}

type UpdateRoomStatusInput struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING"`
}

func UpdateRoomStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateRoomStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	before := room.Status
	room.Status = input.Status
	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.status", "room", room.ID, before, room.Status)
	ctx.JSON(room)
}

func DeleteRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	// Rooms with an active booking cannot be removed
	var active int64
	storage.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", room.ID, []string{models.BookingConfirmed, models.BookingCheckedIn}).
		Count(&active)
	if active > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Room has an active booking", ctx)
		return
	}

	if err := storage.DB.Delete(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.delete", "room", room.ID, room, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func parseRoomPrices(base, perNight, monthly string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	basePrice, err := parseNonNegativeAmount(base)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	perNightRate, err := parseNonNegativeAmount(perNight)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	monthlyRent, err := parseNonNegativeAmount(monthly)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return basePrice, perNightRate, monthlyRent, nil
}

func parseNonNegativeAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.New("negative amount")
	}
	return amount, nil
}
