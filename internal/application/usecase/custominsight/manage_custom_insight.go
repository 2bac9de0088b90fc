// Package custominsight contains use cases for managing user-authored insights.
package custominsight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// ListCustomInsightsInput represents the input for listing custom insights.
type ListCustomInsightsInput struct {
	UserID uuid.UUID
}

// ListCustomInsightsOutput represents the output of listing custom insights.
type ListCustomInsightsOutput struct {
	Insights []*entity.CustomInsight
}

// ListCustomInsightsUseCase handles custom insight listing logic.
type ListCustomInsightsUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewListCustomInsightsUseCase creates a new ListCustomInsightsUseCase instance.
func NewListCustomInsightsUseCase(customInsightRepo adapter.CustomInsightRepository) *ListCustomInsightsUseCase {
	return &ListCustomInsightsUseCase{customInsightRepo: customInsightRepo}
}

// Execute performs the custom insight listing, active and inactive.
func (uc *ListCustomInsightsUseCase) Execute(ctx context.Context, input ListCustomInsightsInput) (*ListCustomInsightsOutput, error) {
	insights, err := uc.customInsightRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom insights: %w", err)
	}
	return &ListCustomInsightsOutput{Insights: insights}, nil
}

// UpdateCustomInsightInput represents the input for custom insight updates.
type UpdateCustomInsightInput struct {
	InsightID   uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Severity    entity.InsightSeverity
	Condition   *entity.InsightCondition
	Formula     string
}

// UpdateCustomInsightOutput represents the output of a custom insight update.
type UpdateCustomInsightOutput struct {
	Insight *entity.CustomInsight
}

// UpdateCustomInsightUseCase handles custom insight update logic.
type UpdateCustomInsightUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewUpdateCustomInsightUseCase creates a new UpdateCustomInsightUseCase instance.
func NewUpdateCustomInsightUseCase(customInsightRepo adapter.CustomInsightRepository) *UpdateCustomInsightUseCase {
	return &UpdateCustomInsightUseCase{customInsightRepo: customInsightRepo}
}

// Execute performs the custom insight update.
func (uc *UpdateCustomInsightUseCase) Execute(ctx context.Context, input UpdateCustomInsightInput) (*UpdateCustomInsightOutput, error) {
	insight, err := findOwnedInsight(ctx, uc.customInsightRepo, input.InsightID, input.UserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := validateInsightFields(name, input.Severity); err != nil {
		return nil, err
	}

	if (input.Condition == nil) == (input.Formula == "") {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightMissingRule,
			"exactly one of condition or formula is required",
			domainerror.ErrInsightMissingRule,
		)
	}
	if input.Condition != nil {
		if err := validateCondition(input.Condition); err != nil {
			return nil, err
		}
	}

	insight.Name = name
	insight.Description = input.Description
	insight.Severity = input.Severity
	insight.Condition = input.Condition
	insight.Formula = input.Formula
	insight.UpdatedAt = time.Now().UTC()

	if err := uc.customInsightRepo.Update(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to update custom insight: %w", err)
	}

	return &UpdateCustomInsightOutput{Insight: insight}, nil
}

// ToggleCustomInsightInput represents the input for toggling an insight.
type ToggleCustomInsightInput struct {
	InsightID uuid.UUID
	UserID    uuid.UUID
}

// ToggleCustomInsightOutput represents the output of toggling an insight.
type ToggleCustomInsightOutput struct {
	Insight *entity.CustomInsight
}

// ToggleCustomInsightUseCase flips an insight's active flag.
type ToggleCustomInsightUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewToggleCustomInsightUseCase creates a new ToggleCustomInsightUseCase instance.
func NewToggleCustomInsightUseCase(customInsightRepo adapter.CustomInsightRepository) *ToggleCustomInsightUseCase {
	return &ToggleCustomInsightUseCase{customInsightRepo: customInsightRepo}
}

// Execute flips the active flag.
func (uc *ToggleCustomInsightUseCase) Execute(ctx context.Context, input ToggleCustomInsightInput) (*ToggleCustomInsightOutput, error) {
	insight, err := findOwnedInsight(ctx, uc.customInsightRepo, input.InsightID, input.UserID)
	if err != nil {
		return nil, err
	}

	insight.IsActive = !insight.IsActive
	insight.UpdatedAt = time.Now().UTC()

	if err := uc.customInsightRepo.Update(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to toggle custom insight: %w", err)
	}

	return &ToggleCustomInsightOutput{Insight: insight}, nil
}

// DuplicateCustomInsightInput represents the input for duplicating an insight.
type DuplicateCustomInsightInput struct {
	InsightID uuid.UUID
	UserID    uuid.UUID
}

// DuplicateCustomInsightOutput represents the output of duplicating an insight.
type DuplicateCustomInsightOutput struct {
	Insight *entity.CustomInsight
}

// DuplicateCustomInsightUseCase copies an insight for the same user.
type DuplicateCustomInsightUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewDuplicateCustomInsightUseCase creates a new DuplicateCustomInsightUseCase instance.
func NewDuplicateCustomInsightUseCase(customInsightRepo adapter.CustomInsightRepository) *DuplicateCustomInsightUseCase {
	return &DuplicateCustomInsightUseCase{customInsightRepo: customInsightRepo}
}

// Execute duplicates the insight. The copy starts inactive with a marked name.
func (uc *DuplicateCustomInsightUseCase) Execute(ctx context.Context, input DuplicateCustomInsightInput) (*DuplicateCustomInsightOutput, error) {
	insight, err := findOwnedInsight(ctx, uc.customInsightRepo, input.InsightID, input.UserID)
	if err != nil {
		return nil, err
	}

	copied := insight.Duplicate()

	if err := uc.customInsightRepo.Create(ctx, copied); err != nil {
		return nil, fmt.Errorf("failed to duplicate custom insight: %w", err)
	}

	return &DuplicateCustomInsightOutput{Insight: copied}, nil
}

// DeleteCustomInsightInput represents the input for custom insight deletion.
type DeleteCustomInsightInput struct {
	InsightID uuid.UUID
	UserID    uuid.UUID
}

// DeleteCustomInsightUseCase handles custom insight deletion logic.
type DeleteCustomInsightUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewDeleteCustomInsightUseCase creates a new DeleteCustomInsightUseCase instance.
func NewDeleteCustomInsightUseCase(customInsightRepo adapter.CustomInsightRepository) *DeleteCustomInsightUseCase {
	return &DeleteCustomInsightUseCase{customInsightRepo: customInsightRepo}
}

// Execute performs the custom insight deletion.
func (uc *DeleteCustomInsightUseCase) Execute(ctx context.Context, input DeleteCustomInsightInput) error {
	insight, err := findOwnedInsight(ctx, uc.customInsightRepo, input.InsightID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.customInsightRepo.Delete(ctx, insight.ID); err != nil {
		return fmt.Errorf("failed to delete custom insight: %w", err)
	}

	return nil
}

// findOwnedInsight loads an insight and enforces ownership.
func findOwnedInsight(ctx context.Context, repo adapter.CustomInsightRepository, insightID, userID uuid.UUID) (*entity.CustomInsight, error) {
	insight, err := repo.FindByID(ctx, insightID)
	if err != nil {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeCustomInsightNotFound,
			"custom insight not found",
			domainerror.ErrCustomInsightNotFound,
		)
	}
	if insight.UserID != userID {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeNotAuthorizedInsight,
			"custom insight does not belong to user",
			domainerror.ErrNotAuthorizedToModifyInsight,
		)
	}
	return insight, nil
}
