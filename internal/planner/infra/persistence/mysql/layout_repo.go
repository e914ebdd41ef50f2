package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/infra/persistence/model"
	"AlliancePlanner/modules/kit/errx"
)

type LayoutRepository struct {
	db *gorm.DB
}

func NewLayoutRepository(db *gorm.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// Migrate 建表，启动时调用一次
func (r *LayoutRepository) Migrate() error {
	return r.db.AutoMigrate(&model.LayoutRow{})
}

const OpLoadLayout = "repo.layout.Load"

func (r *LayoutRepository) Load(ctx context.Context, id string) (domain.Layout, error) {
	var m model.LayoutRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return model.RowToLayout(m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Layout{}, domain.ErrLayoutNotFound
	default:
		return domain.Layout{}, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadLayout).WithData("id", id)
	}
}

const OpSaveLayout = "repo.layout.Save"

func (r *LayoutRepository) Save(ctx context.Context, l domain.Layout) error {
	now := time.Now()
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	row := model.LayoutToRow(l)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "grid_size", "cell_size", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSaveLayout).WithData("id", l.ID)
	}
	return nil
}
