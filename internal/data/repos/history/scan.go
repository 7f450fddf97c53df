package history

import (
	"gorm.io/gorm"

	"github.com/clintwin/clintwin-backend/internal/platform/dbctx"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/types"
)

const maxScansPerDevice = 100

type ScanRepo interface {
	Create(dbc dbctx.Context, row *types.ScanRecord) error
	ListByDevice(dbc dbctx.Context, deviceID, scanType string, limit int) ([]types.ScanRecord, error)
	DeleteByDevice(dbc dbctx.Context, deviceID string) error
}

type scanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScanRepo(db *gorm.DB, baseLog *logger.Logger) ScanRepo {
	return &scanRepo{db: db, log: baseLog.With("repo", "ScanRepo")}
}

func (r *scanRepo) Create(dbc dbctx.Context, row *types.ScanRecord) error {
	if row == nil {
		return nil
	}
	if err := r.db.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return err
	}
	// Bound per-device history by dropping the oldest overflow rows.
	var count int64
	if err := r.db.WithContext(dbc.Ctx).Model(&types.ScanRecord{}).
		Where("device_id = ?", row.DeviceID).Count(&count).Error; err != nil {
		return nil
	}
	if count > maxScansPerDevice {
		sub := r.db.Model(&types.ScanRecord{}).
			Select("id").
			Where("device_id = ?", row.DeviceID).
			Order("created_at DESC").
			Limit(maxScansPerDevice)
		if err := r.db.WithContext(dbc.Ctx).
			Where("device_id = ? AND id NOT IN (?)", row.DeviceID, sub).
			Delete(&types.ScanRecord{}).Error; err != nil {
			r.log.Warn("Failed to trim scan history", "device_id", row.DeviceID, "error", err)
		}
	}
	return nil
}

func (r *scanRepo) ListByDevice(dbc dbctx.Context, deviceID, scanType string, limit int) ([]types.ScanRecord, error) {
	q := r.db.WithContext(dbc.Ctx).
		Where("device_id = ?", deviceID).
		Order("created_at DESC").
		Limit(limit)
	if scanType != "" {
		q = q.Where("scan_type = ?", scanType)
	}
	var rows []types.ScanRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scanRepo) DeleteByDevice(dbc dbctx.Context, deviceID string) error {
	return r.db.WithContext(dbc.Ctx).
		Where("device_id = ?", deviceID).
		Delete(&types.ScanRecord{}).Error
}
