package routes

import (
	"errors"

	"hostelhub-server/services"
	"hostelhub-server/storage"
	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
)

// SyncServiceLogs scans rooms and opens cleaning and laundry entries for any
// room whose service is due. A Redis lock keeps concurrent syncs from
// duplicating entries.
func SyncServiceLogs(ctx iris.Context) {
	result, err := services.SyncServiceLogs(ctx.Request().Context(), storage.DB)
	if err != nil {
		if errors.Is(err, services.ErrSyncAlreadyRunning) {
			utils.CreateError(iris.StatusConflict, "Conflict", "A log sync is already running", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "automation.sync-logs", "room", 0, nil, result)

	ctx.JSON(iris.Map{
		"roomsScanned":    result.RoomsScanned,
		"cleaningCreated": result.CleaningCreated,
		"laundryCreated":  result.LaundryCreated,
	})
}
