package services

import (
	"context"
	"errors"
	"time"

	"hostelhub-server/config"
	"hostelhub-server/models"
	"hostelhub-server/storage"

	"github.com/bsm/redislock"
	"gorm.io/gorm"
)

// SyncResult summarizes one automation run.
type SyncResult struct {
	CleaningCreated int `json:"cleaningCreated"`
	LaundryCreated  int `json:"laundryCreated"`
	RoomsScanned    int `json:"roomsScanned"`
}

var ErrSyncAlreadyRunning = errors.New("log sync already running")

// ServiceDue reports whether a room is due for service given its interval
// configuration and the time it was last serviced. A zero frequency disables
// generation; a room never serviced before is due immediately.
func ServiceDue(frequencyHours int, lastServiced *time.Time, now time.Time) bool {
	if frequencyHours <= 0 {
		return false
	}
	if lastServiced == nil {
		return true
	}
	return now.Sub(*lastServiced) >= time.Duration(frequencyHours)*time.Hour
}

// SyncServiceLogs walks every active room and creates SCHEDULED cleaning and
// laundry log entries for rooms whose service interval has elapsed. A Redis
// lock prevents two concurrent syncs from double-generating entries.
func SyncServiceLogs(ctx context.Context, db *gorm.DB) (*SyncResult, error) {
	lock, err := storage.Locker.Obtain(ctx, "automation:sync-logs", 2*time.Minute, nil)
	if err == redislock.ErrNotObtained {
		return nil, ErrSyncAlreadyRunning
	}
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	var rooms []models.Room
	if err := db.Where("status <> ?", models.RoomMaintenance).Find(&rooms).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	result := &SyncResult{RoomsScanned: len(rooms)}

	for _, room := range rooms {
		if ServiceDue(room.CleaningFrequencyHours, room.LastCleanedAt, now) {
			if due, err := hasOpenCleaningLog(db, room.ID); err != nil {
				config.LogError("services", "SyncServiceLogs", "cleaning lookup", room.ID, err)
				continue
			} else if !due {
				entry := models.CleaningLog{
					RoomID:        room.ID,
					HostelID:      room.HostelID,
					Status:        models.LogScheduled,
					ScheduledFor:  now,
					AutoGenerated: true,
				}
				if err := db.Create(&entry).Error; err != nil {
					config.LogError("services", "SyncServiceLogs", "cleaning create", room.ID, err)
					continue
				}
				result.CleaningCreated++
			}
		}

		if ServiceDue(room.LaundryFrequencyHours, room.LastLaundryAt, now) {
			if due, err := hasOpenLaundryLog(db, room.ID); err != nil {
				config.LogError("services", "SyncServiceLogs", "laundry lookup", room.ID, err)
				continue
			} else if !due {
				entry := models.LaundryLog{
					RoomID:        room.ID,
					HostelID:      room.HostelID,
					Status:        models.LogScheduled,
					ScheduledFor:  now,
					AutoGenerated: true,
				}
				if err := db.Create(&entry).Error; err != nil {
					config.LogError("services", "SyncServiceLogs", "laundry create", room.ID, err)
					continue
				}
				result.LaundryCreated++
			}
		}
	}

	return result, nil
}

func hasOpenCleaningLog(db *gorm.DB, roomID uint) (bool, error) {
	var count int64
	err := db.Model(&models.CleaningLog{}).
		Where("room_id = ? AND status = ?", roomID, models.LogScheduled).
		Count(&count).Error
	return count > 0, err
}

func hasOpenLaundryLog(db *gorm.DB, roomID uint) (bool, error) {
	var count int64
	err := db.Model(&models.LaundryLog{}).
		Where("room_id = ? AND status = ?", roomID, models.LogScheduled).
		Count(&count).Error
	return count > 0, err
}
