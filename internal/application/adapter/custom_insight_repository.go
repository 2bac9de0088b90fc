// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// CustomInsightRepository defines the interface for custom insight persistence operations.
type CustomInsightRepository interface {
	// Create creates a new custom insight in the database.
	Create(ctx context.Context, insight *entity.CustomInsight) error

	// FindByID retrieves a custom insight by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomInsight, error)

	// FindByUser retrieves all custom insights for a user, active and
	// inactive; the evaluator filters to active ones.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CustomInsight, error)

	// Update updates an existing custom insight in the database.
	Update(ctx context.Context, insight *entity.CustomInsight) error

	// Delete removes a custom insight from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
