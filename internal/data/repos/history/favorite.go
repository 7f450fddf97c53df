package history

import (
	"gorm.io/gorm"

	"github.com/clintwin/clintwin-backend/internal/platform/dbctx"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/types"
)

type FavoriteRepo interface {
	Create(dbc dbctx.Context, row *types.Favorite) error
	GetByMedicine(dbc dbctx.Context, deviceID, medicineID string) (*types.Favorite, error)
	ListByDevice(dbc dbctx.Context, deviceID string) ([]types.Favorite, error)
	Delete(dbc dbctx.Context, deviceID, favoriteID string) (bool, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (r *favoriteRepo) Create(dbc dbctx.Context, row *types.Favorite) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).Create(row).Error
}

func (r *favoriteRepo) GetByMedicine(dbc dbctx.Context, deviceID, medicineID string) (*types.Favorite, error) {
	var row types.Favorite
	err := r.db.WithContext(dbc.Ctx).
		Where("device_id = ? AND medicine_id = ?", deviceID, medicineID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *favoriteRepo) ListByDevice(dbc dbctx.Context, deviceID string) ([]types.Favorite, error) {
	var rows []types.Favorite
	err := r.db.WithContext(dbc.Ctx).
		Where("device_id = ?", deviceID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *favoriteRepo) Delete(dbc dbctx.Context, deviceID, favoriteID string) (bool, error) {
	res := r.db.WithContext(dbc.Ctx).
		Where("device_id = ? AND id = ?", deviceID, favoriteID).
		Delete(&types.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
