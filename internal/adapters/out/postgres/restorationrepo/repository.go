package restorationrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRestorationRepository implements RestorationRepository using GORM.
type GormRestorationRepository struct {
	db *gorm.DB
}

// NewGormRestorationRepository creates a new GORM restoration repository.
func NewGormRestorationRepository(db *gorm.DB) *GormRestorationRepository {
	return &GormRestorationRepository{db: db}
}

// Add persists pending restoration records.
func (r *GormRestorationRepository) Add(ctx context.Context, restorations []product.Restoration) error {
	if len(restorations) == 0 {
		return nil
	}

	dtos := make([]RestorationDTO, 0, len(restorations))
	for _, restoration := range restorations {
		dtos = append(dtos, fromDomain(restoration))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetPending retrieves up to limit unprocessed records, oldest first.
// Rows are locked with SKIP LOCKED so the scheduled sweep and the immediate
// post-cancellation pass never process the same record concurrently.
func (r *GormRestorationRepository) GetPending(ctx context.Context, limit int) ([]product.Restoration, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []RestorationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", statusPending).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	restorations := make([]product.Restoration, 0, len(dtos))
	for _, dto := range dtos {
		restoration, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		restorations = append(restorations, restoration)
	}

	return restorations, nil
}

// MarkDone marks a restoration record as applied.
func (r *GormRestorationRepository) MarkDone(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&RestorationDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       statusDone,
			"processed_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restoration", id)
	}

	return nil
}

// MarkAttempt increments the attempt counter of a failed restoration.
func (r *GormRestorationRepository) MarkAttempt(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&RestorationDTO{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restoration", id)
	}

	return nil
}
