package routes

import (
	"encoding/json"
	"time"

	"hostelhub-server/config"
	"hostelhub-server/models"
	"hostelhub-server/services"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

type CreateNoticeInput struct {
	HostelID  uint       `json:"hostelID" validate:"required"`
	Title     string     `json:"title" validate:"required,max=160"`
	Body      string     `json:"body" validate:"required"`
	Audience  []string   `json:"audience" validate:"omitempty,dive,oneof=guest staff warden accountant admin"`
	Pinned    bool       `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func CreateNotice(ctx iris.Context) {
	creatorID := ctx.Values().Get("userID").(uint)

	var input CreateNoticeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	notice := models.Notice{
		HostelID:    input.HostelID,
		CreatedByID: creatorID,
		Title:       input.Title,
		Body:        input.Body,
		Pinned:      input.Pinned,
		ExpiresAt:   input.ExpiresAt,
	}

	if len(input.Audience) > 0 {
		raw, err := json.Marshal(input.Audience)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		notice.Audience = datatypes.JSON(raw)
	}

	if err := storage.DB.Create(&notice).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "notice.create", "notice", notice.ID, nil, notice)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(notice)
}

// PublishNotice stamps publishedAt and fans the notice out to its audience
// by mail. Mail delivery is best effort and never blocks the response.
func PublishNotice(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var notice models.Notice
	if err := storage.DB.First(&notice, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Notice not found", ctx)
		return
	}

	if notice.PublishedAt != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Notice is already published", ctx)
		return
	}

	now := time.Now()
	notice.PublishedAt = &now
	if err := storage.DB.Save(&notice).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var users []models.User
	if err := storage.DB.Find(&users).Error; err != nil {
		config.LogError("routes", "PublishNotice", "audience query", notice.ID, err)
		ctx.JSON(notice)
		return
	}

	roles := notice.AudienceRoles()
	mailer := services.NewMailer()
	go func(notice models.Notice, users []models.User) {
		for _, user := range users {
			if roles != nil && !slices.Contains(roles, user.Role) {
				continue
			}
			if err := mailer.SendNoticeMail(&notice, user.Email); err != nil {
				config.LogError("routes", "PublishNotice", "notice mail", user.ID, err)
			}
		}
	}(notice, users)

	utils.Audit(ctx, "notice.publish", "notice", notice.ID, nil, notice)
	ctx.JSON(notice)
}

// GetActiveNotices lists published, unexpired notices visible to the caller's
// role. Pinned notices sort first.
func GetActiveNotices(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	role := claims.Role
	hostelID := ctx.URLParamDefault("hostelID", "")

	now := time.Now()
	query := storage.DB.
		Where("published_at IS NOT NULL").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("pinned DESC, published_at DESC")
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}

	var notices []models.Notice
	if err := query.Find(&notices).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	visible := make([]models.Notice, 0, len(notices))
	for _, notice := range notices {
		roles := notice.AudienceRoles()
		if roles == nil || role == "admin" || role == "super_admin" || slices.Contains(roles, role) {
			visible = append(visible, notice)
		}
	}

	ctx.JSON(visible)
}

func DeleteNotice(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var notice models.Notice
	if err := storage.DB.First(&notice, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Notice not found", ctx)
		return
	}

	if err := storage.DB.Delete(&notice).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "notice.delete", "notice", notice.ID, notice, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
