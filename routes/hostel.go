package routes

import (
	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateHostelInput struct {
	Name         string `json:"name" validate:"required,max=120"`
	Address      string `json:"address" validate:"required,max=256"`
	City         string `json:"city" validate:"required,max=80"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,max=20"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	TotalFloors  int    `json:"totalFloors" validate:"gte=0"`
}

func CreateHostel(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	var input CreateHostelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	hostel := models.Hostel{
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
		OwnerID:      ownerID,
		TotalFloors:  input.TotalFloors,
	}

	if err := storage.DB.Create(&hostel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "hostel.create", "hostel", hostel.ID, nil, hostel)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(hostel)
}

func GetHostels(ctx iris.Context) {
	city := ctx.URLParamDefault("city", "")

	query := storage.DB.Where("active = true").Order("name ASC")
	if city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var hostels []models.Hostel
	if err := query.Find(&hostels).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(hostels)
}

func GetHostel(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var hostel models.Hostel
	if err := storage.DB.Preload("Rooms").First(&hostel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(hostel)
}

type UpdateHostelInput struct {
	Name         string `json:"name" validate:"omitempty,max=120"`
	Address      string `json:"address" validate:"omitempty,max=256"`
	City         string `json:"city" validate:"omitempty,max=80"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,max=20"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	TotalFloors  *int   `json:"totalFloors" validate:"omitempty,gte=0"`
	Active       *bool  `json:"active"`
}

func UpdateHostel(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var hostel models.Hostel
	if err := storage.DB.First(&hostel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateHostelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := hostel
	if input.Name != "" {
		hostel.Name = input.Name
	}
	if input.Address != "" {
		hostel.Address = input.Address
	}
	if input.City != "" {
		hostel.City = input.City
	}
	if input.ContactPhone != "" {
		hostel.ContactPhone = input.ContactPhone
	}
	if input.ContactEmail != "" {
		hostel.ContactEmail = input.ContactEmail
	}
	if input.TotalFloors != nil {
		hostel.TotalFloors = *input.TotalFloors
	}
	if input.Active != nil {
		hostel.Active = input.Active
	}

	if err := storage.DB.Save(&hostel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "hostel.update", "hostel", hostel.ID, before, hostel)
	ctx.JSON(hostel)
}

// DeleteHostel soft deactivates rather than removing rows, so bookings and
// payments keep their hostel reference.
func DeleteHostel(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var hostel models.Hostel
	if err := storage.DB.First(&hostel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	inactive := false
	hostel.Active = &inactive
	if err := storage.DB.Save(&hostel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "hostel.deactivate", "hostel", hostel.ID, nil, hostel)
	ctx.StatusCode(iris.StatusNoContent)
}
