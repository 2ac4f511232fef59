package main

import (
	"fmt"
	"log"
	"os"

	"hostelhub-server/routes"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the management dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
	}

	hostels := app.Party("/api/hostels")
	{
		hostels.Get("/", routes.GetHostels)
		hostels.Get("/{id:uint}", routes.GetHostel)
		hostels.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateHostel)
		hostels.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateHostel)
		hostels.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.SuperAdminOnlyMiddleware, routes.DeleteHostel)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Get("/", routes.GetRooms)
		rooms.Get("/{id:uint}", routes.GetRoom)
		rooms.Post("/createroom", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateRoom)
		rooms.Patch("/editroom/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.EditRoom)
		rooms.Patch("/{id:uint}/status", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware, routes.UpdateRoomStatus)
		rooms.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteRoom)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware)
	{
		bookings.Post("/", utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		bookings.Get("/mine", utils.UserIDFromTokenMiddleware, routes.GetMyBookings)
		bookings.Get("/hostel/{hostelID:uint}", utils.StaffOnlyMiddleware, routes.GetBookingsByHostel)
		bookings.Get("/{id:uint}", utils.UserIDFromTokenMiddleware, routes.GetBooking)
		bookings.Get("/{id:uint}/ledger", utils.UserIDFromTokenMiddleware, routes.GetBookingLedger)
		bookings.Patch("/{id:uint}/status", utils.StaffOnlyMiddleware, routes.UpdateBookingStatus)
		bookings.Delete("/{id:uint}", utils.UserIDFromTokenMiddleware, routes.CancelBooking)
	}

	payments := app.Party("/api/payments", accessTokenVerifierMiddleware)
	{
		payments.Post("/", utils.UserIDFromTokenMiddleware, routes.CreatePayment)
		payments.Get("/mine", utils.UserIDFromTokenMiddleware, routes.GetMyPayments)
		payments.Get("/booking/{bookingID:uint}", utils.UserIDFromTokenMiddleware, routes.GetPaymentsByBooking)
		payments.Post("/{id:uint}/approve", utils.FinanceOnlyMiddleware, routes.ApprovePayment)
		payments.Post("/{id:uint}/reject", utils.FinanceOnlyMiddleware, routes.RejectPayment)
		payments.Post("/bulk-approve", utils.FinanceOnlyMiddleware, routes.BulkApprovePayments)
		payments.Post("/{id:uint}/receipt", utils.UserIDFromTokenMiddleware, routes.UploadReceipt)
		payments.Get("/{id:uint}/receipt-link", utils.UserIDFromTokenMiddleware, routes.GetReceiptLink)
	}
	app.Get("/api/payments/{id:uint}/receipt", routes.DownloadReceipt)

	complaints := app.Party("/api/complaints", accessTokenVerifierMiddleware)
	{
		complaints.Post("/", utils.UserIDFromTokenMiddleware, routes.CreateComplaint)
		complaints.Get("/mine", utils.UserIDFromTokenMiddleware, routes.GetMyComplaints)
		complaints.Get("/hostel/{hostelID:uint}", utils.StaffOnlyMiddleware, routes.GetComplaintsByHostel)
		complaints.Get("/{id:uint}", utils.UserIDFromTokenMiddleware, routes.GetComplaint)
		complaints.Patch("/{id:uint}/assign", utils.StaffOnlyMiddleware, routes.AssignComplaint)
		complaints.Patch("/{id:uint}/status", utils.StaffOnlyMiddleware, routes.UpdateComplaintStatus)
		complaints.Post("/{id:uint}/comments", utils.UserIDFromTokenMiddleware, routes.AddComplaintComment)
	}

	maintenance := app.Party("/api/maintenance", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		maintenance.Post("/", routes.CreateMaintenance)
		maintenance.Get("/", routes.GetMaintenanceTickets)
		maintenance.Patch("/{id:uint}", routes.UpdateMaintenance)
	}

	cleaning := app.Party("/api/cleaning", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		cleaning.Post("/", routes.CreateCleaningLog)
		cleaning.Get("/", routes.GetCleaningLogs)
		cleaning.Patch("/{id:uint}/complete", routes.CompleteCleaningLog)
	}

	laundry := app.Party("/api/laundry", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		laundry.Post("/", routes.CreateLaundryLog)
		laundry.Get("/", routes.GetLaundryLogs)
		laundry.Patch("/{id:uint}/complete", routes.CompleteLaundryLog)
	}

	staff := app.Party("/api/staff", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		staff.Post("/", routes.CreateStaffProfile)
		staff.Get("/", routes.GetStaffProfiles)
		staff.Post("/salaries", routes.GenerateSalary)
		staff.Get("/salaries", routes.GetSalaries)
		staff.Post("/salaries/{id:uint}/pay", utils.FinanceOnlyMiddleware, routes.PaySalary)
	}

	expenses := app.Party("/api/expenses", accessTokenVerifierMiddleware, utils.FinanceOnlyMiddleware)
	{
		expenses.Post("/", routes.CreateExpense)
		expenses.Get("/", routes.GetExpenses)
		expenses.Get("/summary", routes.GetExpenseSummary)
		expenses.Patch("/{id:uint}", routes.UpdateExpense)
		expenses.Delete("/{id:uint}", routes.DeleteExpense)
	}

	notices := app.Party("/api/notices", accessTokenVerifierMiddleware)
	{
		notices.Get("/", routes.GetActiveNotices)
		notices.Post("/", utils.StaffOnlyMiddleware, routes.CreateNotice)
		notices.Post("/{id:uint}/publish", utils.AdminOnlyMiddleware, routes.PublishNotice)
		notices.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteNotice)
	}

	automation := app.Party("/api/automation", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		automation.Post("/sync-logs", routes.SyncServiceLogs)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
		notifications.Post("/read-all", routes.MarkAllNotificationsRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
		admin.Post("/export", routes.AdminCreateExport)
		admin.Get("/export/{id:string}", routes.AdminGetExport)
		admin.Get("/export/{id:string}/download", routes.AdminDownloadExport)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
