// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindVisibleToUser retrieves the user's own categories plus the global
	// default categories, ordered by name.
	FindVisibleToUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// FindByNameAndUser retrieves a category visible to the user by
	// case-insensitive name match. Returns nil when no category matches.
	FindByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (*entity.Category, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNameAndUser checks if a category with the given name already
	// exists among the categories visible to the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)
}
