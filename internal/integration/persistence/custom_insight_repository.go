// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/persistence/model"
)

// customInsightRepository implements the adapter.CustomInsightRepository interface.
type customInsightRepository struct {
	db *gorm.DB
}

// NewCustomInsightRepository creates a new custom insight repository instance.
func NewCustomInsightRepository(db *gorm.DB) adapter.CustomInsightRepository {
	return &customInsightRepository{
		db: db,
	}
}

// Create creates a new custom insight in the database.
func (r *customInsightRepository) Create(ctx context.Context, insight *entity.CustomInsight) error {
	insightModel := model.CustomInsightFromEntity(insight)
	result := r.db.WithContext(ctx).Create(insightModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a custom insight by its ID.
func (r *customInsightRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomInsight, error) {
	var insightModel model.CustomInsightModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&insightModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCustomInsightNotFound
		}
		return nil, result.Error
	}
	return insightModel.ToEntity(), nil
}

// FindByUser retrieves all custom insights for a user, active and inactive,
// ordered by creation time. The evaluator filters to active ones.
func (r *customInsightRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CustomInsight, error) {
	var insightModels []model.CustomInsightModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&insightModels)
	if result.Error != nil {
		return nil, result.Error
	}

	insights := make([]*entity.CustomInsight, len(insightModels))
	for i, im := range insightModels {
		insights[i] = im.ToEntity()
	}
	return insights, nil
}

// Update updates an existing custom insight in the database.
func (r *customInsightRepository) Update(ctx context.Context, insight *entity.CustomInsight) error {
	insightModel := model.CustomInsightFromEntity(insight)
	result := r.db.WithContext(ctx).Save(insightModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a custom insight from the database.
func (r *customInsightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CustomInsightModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
