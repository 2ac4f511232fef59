package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/services"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateComplaintInput struct {
	HostelID    uint   `json:"hostelID" validate:"required"`
	RoomID      *uint  `json:"roomID"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=electricity plumbing food wifi other"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

func CreateComplaint(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateComplaintInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	category := input.Category
	if category == "" {
		category = "other"
	}

	complaint := models.Complaint{
		UserID:      claims.ID,
		HostelID:    input.HostelID,
		RoomID:      input.RoomID,
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Status:      models.ComplaintPending,
		Priority:    priority,
	}

	if err := storage.DB.Create(&complaint).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(complaint)
}

func GetMyComplaints(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var complaints []models.Complaint
	res := storage.DB.Preload("Room").Preload("AssignedTo").
		Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&complaints)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(complaints)
}

func GetComplaintsByHostel(ctx iris.Context) {
	hostelID := ctx.Params().Get("hostelID")
	status := ctx.URLParamDefault("status", "")

	query := storage.DB.Preload("User").Preload("Room").Preload("AssignedTo").
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var complaints []models.Complaint
	if err := query.Find(&complaints).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(complaints)
}

func GetComplaint(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var complaint models.Complaint
	res := storage.DB.Preload("User").Preload("Room").Preload("AssignedTo").
		Preload("Comments").Preload("Comments.User").
		Where("id = ?", id).Find(&complaint)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(complaint)
}

type AssignComplaintInput struct {
	AssignedToID uint `json:"assignedToID" validate:"required"`
}

// AssignComplaint hands a complaint to a staff member and moves it to
// IN_PROGRESS if it was still pending.
func AssignComplaint(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input AssignComplaintInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var complaint models.Complaint
	if err := storage.DB.First(&complaint, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Complaint not found", ctx)
		return
	}

	var assignee models.User
	if err := storage.DB.First(&assignee, input.AssignedToID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Assignee not found", ctx)
		return
	}

	before := complaint
	complaint.AssignedToID = &input.AssignedToID
	if complaint.Status == models.ComplaintPending {
		complaint.Status = models.ComplaintInProgress
	}

	if err := storage.DB.Save(&complaint).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "complaint.assign", "complaint", complaint.ID, before, complaint)

	ns := services.NewNotificationService(storage.DB)
	go ns.NotifyComplaintUpdate(&complaint)

	ctx.JSON(complaint)
}

type UpdateComplaintStatusInput struct {
	Status          string `json:"status" validate:"required,oneof=IN_PROGRESS RESOLVED REJECTED"`
	ResolutionNotes string `json:"resolutionNotes"`
}

// UpdateComplaintStatus drives the complaint state machine. Resolving
// requires resolution notes; RESOLVED and REJECTED are terminal.
func UpdateComplaintStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateComplaintStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var complaint models.Complaint
	if err := storage.DB.First(&complaint, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Complaint not found", ctx)
		return
	}

	if !services.CanTransitionComplaint(complaint.Status, input.Status) {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Cannot move complaint from "+complaint.Status+" to "+input.Status, ctx)
		return
	}

	if input.Status == models.ComplaintResolved && input.ResolutionNotes == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Resolution notes are required to resolve a complaint", ctx)
		return
	}

	before := complaint.Status
	complaint.Status = input.Status
	if input.Status == models.ComplaintResolved {
		now := time.Now()
		complaint.ResolutionNotes = input.ResolutionNotes
		complaint.ResolvedAt = &now
	}

	if err := storage.DB.Save(&complaint).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "complaint.status", "complaint", complaint.ID, before, complaint.Status)

	ns := services.NewNotificationService(storage.DB)
	go ns.NotifyComplaintUpdate(&complaint)

	ctx.JSON(complaint)
}

type ComplaintCommentInput struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func AddComplaintComment(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid complaint id", ctx)
		return
	}

	var input ComplaintCommentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var complaint models.Complaint
	if err := storage.DB.First(&complaint, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Complaint not found", ctx)
		return
	}

	comment := models.ComplaintComment{
		ComplaintID: complaint.ID,
		UserID:      claims.ID,
		Body:        input.Body,
	}

	if err := storage.DB.Create(&comment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(comment)
}
