package routes

import (
	"time"

	"hostelhub-server/models"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
)

type CreateExpenseInput struct {
	HostelID    uint      `json:"hostelID" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=utilities groceries repairs salaries other"`
	Amount      string    `json:"amount" validate:"required"`
	Description string    `json:"description" validate:"max=512"`
	IncurredAt  time.Time `json:"incurredAt" validate:"required"`
}

func CreateExpense(ctx iris.Context) {
	recorderID := ctx.Values().Get("userID").(uint)

	var input CreateExpenseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amount, amountErr := decimal.NewFromString(input.Amount)
	if amountErr != nil || !amount.IsPositive() {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "amount must be a positive amount", ctx)
		return
	}

	expense := models.Expense{
		HostelID:    input.HostelID,
		RecordedBy:  recorderID,
		Category:    input.Category,
		Amount:      amount,
		Description: input.Description,
		IncurredAt:  input.IncurredAt,
	}

	if err := storage.DB.Create(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.create", "expense", expense.ID, nil, expense)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(expense)
}

func GetExpenses(ctx iris.Context) {
	hostelID := ctx.URLParamDefault("hostelID", "")
	category := ctx.URLParamDefault("category", "")

	query := storage.DB.Order("incurred_at DESC")
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(expenses)
}

type UpdateExpenseInput struct {
	Category    string `json:"category" validate:"omitempty,oneof=utilities groceries repairs salaries other"`
	Amount      string `json:"amount"`
	Description string `json:"description" validate:"max=512"`
}

func UpdateExpense(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var expense models.Expense
	if err := storage.DB.First(&expense, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Expense not found", ctx)
		return
	}

	var input UpdateExpenseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := expense
	if input.Category != "" {
		expense.Category = input.Category
	}
	if input.Amount != "" {
		amount, amountErr := decimal.NewFromString(input.Amount)
		if amountErr != nil || !amount.IsPositive() {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "amount must be a positive amount", ctx)
			return
		}
		expense.Amount = amount
	}
	if input.Description != "" {
		expense.Description = input.Description
	}

	if err := storage.DB.Save(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.update", "expense", expense.ID, before, expense)
	ctx.JSON(expense)
}

func DeleteExpense(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var expense models.Expense
	if err := storage.DB.First(&expense, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Expense not found", ctx)
		return
	}

	if err := storage.DB.Delete(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.delete", "expense", expense.ID, expense, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

type expenseCategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// GetExpenseSummary totals expenses per category for one calendar month.
func GetExpenseSummary(ctx iris.Context) {
	hostelID := ctx.URLParamDefault("hostelID", "")
	year, yearErr := ctx.URLParamInt("year")
	month, monthErr := ctx.URLParamInt("month")
	if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "year and month query params are required", ctx)
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := storage.DB.Where("incurred_at >= ? AND incurred_at < ?", from, to)
	if hostelID != "" {
		query = query.Where("hostel_id = ?", hostelID)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	byCategory := map[string]decimal.Decimal{}
	grand := decimal.Zero
	for _, expense := range expenses {
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
		grand = grand.Add(expense.Amount)
	}

	categories := make([]expenseCategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		categories = append(categories, expenseCategoryTotal{Category: category, Total: total})
	}

	ctx.JSON(iris.Map{
		"year":       year,
		"month":      month,
		"total":      grand,
		"categories": categories,
	})
}
