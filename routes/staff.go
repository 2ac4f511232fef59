package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
)

type CreateStaffProfileInput struct {
	UserID        uint      `json:"userID" validate:"required"`
	HostelID      uint      `json:"hostelID" validate:"required"`
	Designation   string    `json:"designation" validate:"required,oneof=warden cleaner cook guard accountant"`
	Shift         string    `json:"shift" validate:"required,oneof=morning evening night"`
	MonthlySalary string    `json:"monthlySalary" validate:"required"`
	JoinedAt      time.Time `json:"joinedAt" validate:"required"`
}

// CreateStaffProfile attaches an employment record to a user and promotes
// their role to staff if they were a guest.
func CreateStaffProfile(ctx iris.Context) {
	var input CreateStaffProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	salary, salaryErr := decimal.NewFromString(input.MonthlySalary)
	if salaryErr != nil || salary.IsNegative() {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "monthlySalary must be a non-negative amount", ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, input.UserID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return
	}

	var existing int64
	storage.DB.Model(&models.StaffProfile{}).Where("user_id = ?", input.UserID).Count(&existing)
	if existing > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "User already has a staff profile", ctx)
		return
	}

	profile := models.StaffProfile{
		UserID:        input.UserID,
		HostelID:      input.HostelID,
		Designation:   input.Designation,
		Shift:         input.Shift,
		MonthlySalary: salary,
		JoinedAt:      input.JoinedAt,
	}

	if err := storage.DB.Create(&profile).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if user.Role == "guest" {
		role := "staff"
		if input.Designation == "warden" || input.Designation == "accountant" {
			role = input.Designation
		}
		storage.DB.Model(&user).Update("role", role)
	}

	utils.Audit(ctx, "staff.create", "staff_profile", profile.ID, nil, profile)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(profile)
}

func GetStaffProfiles(ctx iris.Context) {
	hostelID := ctx.URLParamDefault("hostelID", "")

	query := storage.DB.Preload("User").Order("created_at DESC")
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}

	var profiles []models.StaffProfile
	if err := query.Find(&profiles).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(profiles)
}

type GenerateSalaryInput struct {
	StaffProfileID uint   `json:"staffProfileID" validate:"required"`
	Month          string `json:"month" validate:"required"`
	Year           int    `json:"year" validate:"required,gte=2000"`
	Bonus          string `json:"bonus"`
	Deduction      string `json:"deduction"`
}

// GenerateSalary opens a PENDING salary record for a staff member's month.
// One record per (staff, month, year).
func GenerateSalary(ctx iris.Context) {
	var input GenerateSalaryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var profile models.StaffProfile
	if err := storage.DB.First(&profile, input.StaffProfileID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Staff profile not found", ctx)
		return
	}

	var existing int64
	storage.DB.Model(&models.Salary{}).
		Where("staff_profile_id = ? AND month = ? AND year = ?", input.StaffProfileID, input.Month, input.Year).
		Count(&existing)
	if existing > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Salary already generated for this month", ctx)
		return
	}

	bonus := decimal.Zero
	if input.Bonus != "" {
		parsed, err := decimal.NewFromString(input.Bonus)
		if err != nil || parsed.IsNegative() {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "bonus must be a non-negative amount", ctx)
			return
		}
		bonus = parsed
	}
	deduction := decimal.Zero
	if input.Deduction != "" {
		parsed, err := decimal.NewFromString(input.Deduction)
		if err != nil || parsed.IsNegative() {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "deduction must be a non-negative amount", ctx)
			return
		}
		deduction = parsed
	}

	salary := models.Salary{
		StaffProfileID: profile.ID,
		HostelID:       profile.HostelID,
		Month:          input.Month,
		Year:           input.Year,
		Amount:         profile.MonthlySalary.Add(bonus).Sub(deduction),
		Bonus:          bonus,
		Deduction:      deduction,
		Status:         models.SalaryPending,
	}

	if err := storage.DB.Create(&salary).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(salary)
}

func GetSalaries(ctx iris.Context) {
	staffProfileID := ctx.URLParamDefault("staffProfileID", "")
	status := ctx.URLParamDefault("status", "")

	query := storage.DB.Preload("StaffProfile").Preload("StaffProfile.User").Order("year DESC, created_at DESC")
	if staffProfileID != "" {
		query = query.Where("staff_profile_id = ?", staffProfileID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var salaries []models.Salary
	if err := query.Find(&salaries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(salaries)
}

// PaySalary settles a pending salary record.
func PaySalary(ctx iris.Context) {
	payerID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var salary models.Salary
	if err := storage.DB.First(&salary, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Salary record not found", ctx)
		return
	}

	if salary.Status != models.SalaryPending {
		utils.CreateError(iris.StatusConflict, "Conflict", "Salary is already paid", ctx)
		return
	}

	now := time.Now()
	salary.Status = models.SalaryPaid
	salary.PaidAt = &now
	salary.PaidByID = &payerID

	if err := storage.DB.Save(&salary).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "salary.pay", "salary", salary.ID, models.SalaryPending, models.SalaryPaid)
	ctx.JSON(salary)
}
