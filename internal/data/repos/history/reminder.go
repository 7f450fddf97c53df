package history

import (
	"gorm.io/gorm"

	"github.com/clintwin/clintwin-backend/internal/platform/dbctx"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/types"
)

type ReminderRepo interface {
	Create(dbc dbctx.Context, row *types.Reminder) error
	ListByDevice(dbc dbctx.Context, deviceID string, activeOnly bool) ([]types.Reminder, error)
	Delete(dbc dbctx.Context, deviceID, reminderID string) (bool, error)
	Toggle(dbc dbctx.Context, deviceID, reminderID string) (*types.Reminder, error)
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{db: db, log: baseLog.With("repo", "ReminderRepo")}
}

func (r *reminderRepo) Create(dbc dbctx.Context, row *types.Reminder) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).Create(row).Error
}

func (r *reminderRepo) ListByDevice(dbc dbctx.Context, deviceID string, activeOnly bool) ([]types.Reminder, error) {
	q := r.db.WithContext(dbc.Ctx).
		Where("device_id = ?", deviceID).
		Order("created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []types.Reminder
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reminderRepo) Delete(dbc dbctx.Context, deviceID, reminderID string) (bool, error) {
	res := r.db.WithContext(dbc.Ctx).
		Where("device_id = ? AND id = ?", deviceID, reminderID).
		Delete(&types.Reminder{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reminderRepo) Toggle(dbc dbctx.Context, deviceID, reminderID string) (*types.Reminder, error) {
	var row types.Reminder
	err := r.db.WithContext(dbc.Ctx).
		Where("device_id = ? AND id = ?", deviceID, reminderID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	row.IsActive = !row.IsActive
	if err := r.db.WithContext(dbc.Ctx).Model(&row).Update("is_active", row.IsActive).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
