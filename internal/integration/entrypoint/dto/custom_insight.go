// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/custominsight"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// ConditionRequest represents a structured trigger condition in requests.
type ConditionRequest struct {
	Field    string  `json:"field" binding:"required"`
	Operator string  `json:"operator" binding:"required"`
	Value    *string `json:"value,omitempty"`
	Function *string `json:"function,omitempty"`
	Category string  `json:"category,omitempty"`
}

// CreateCustomInsightRequest represents the request body for custom insight
// creation. Either template_id or exactly one of condition/formula is set.
type CreateCustomInsightRequest struct {
	Name        string            `json:"name" binding:"omitempty,max=100"`
	Description string            `json:"description,omitempty"`
	Severity    string            `json:"severity,omitempty" binding:"omitempty,oneof=info success warning error"`
	TemplateID  string            `json:"template_id,omitempty"`
	Condition   *ConditionRequest `json:"condition,omitempty"`
	Formula     string            `json:"formula,omitempty"`
}

// UpdateCustomInsightRequest represents the request body for custom insight update.
type UpdateCustomInsightRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=100"`
	Description string            `json:"description,omitempty"`
	Severity    string            `json:"severity" binding:"required,oneof=info success warning error"`
	Condition   *ConditionRequest `json:"condition,omitempty"`
	Formula     string            `json:"formula,omitempty"`
}

// ConditionResponse represents a structured trigger condition in responses.
type ConditionResponse struct {
	Field    string  `json:"field"`
	Operator string  `json:"operator"`
	Value    *string `json:"value,omitempty"`
	Function *string `json:"function,omitempty"`
	Category string  `json:"category,omitempty"`
}

// CustomInsightResponse represents a custom insight in API responses.
type CustomInsightResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Severity    string             `json:"severity"`
	IsActive    bool               `json:"is_active"`
	InsightType string             `json:"insight_type"`
	TemplateID  string             `json:"template_id,omitempty"`
	Condition   *ConditionResponse `json:"condition,omitempty"`
	Formula     string             `json:"formula,omitempty"`
}

// CustomInsightListResponse represents the response for listing custom insights.
type CustomInsightListResponse struct {
	Insights []CustomInsightResponse `json:"insights"`
}

// InsightTemplateResponse represents a predefined insight template in API responses.
type InsightTemplateResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Severity    string            `json:"severity"`
	Condition   ConditionResponse `json:"condition"`
}

// InsightTemplateListResponse represents the response for listing templates.
type InsightTemplateListResponse struct {
	Templates []InsightTemplateResponse `json:"templates"`
}

// ToCondition converts a ConditionRequest to a domain InsightCondition.
// An unparsable value is passed through as nil and rejected by the use case.
func (r *ConditionRequest) ToCondition() *entity.InsightCondition {
	condition := &entity.InsightCondition{
		Field:    entity.ConditionField(r.Field),
		Operator: entity.ConditionOperator(r.Operator),
		Category: r.Category,
	}

	if r.Value != nil {
		if value, err := decimal.NewFromString(*r.Value); err == nil {
			condition.Value = &value
		}
	}
	if r.Function != nil {
		fn := entity.ConditionFunction(*r.Function)
		condition.Function = &fn
	}

	return condition
}

func toConditionResponse(condition *entity.InsightCondition) *ConditionResponse {
	if condition == nil {
		return nil
	}

	response := &ConditionResponse{
		Field:    string(condition.Field),
		Operator: string(condition.Operator),
		Category: condition.Category,
	}
	if condition.Value != nil {
		value := condition.Value.String()
		response.Value = &value
	}
	if condition.Function != nil {
		fn := string(*condition.Function)
		response.Function = &fn
	}
	return response
}

// ToCustomInsightResponse converts a domain CustomInsight entity to a
// CustomInsightResponse DTO.
func ToCustomInsightResponse(insight *entity.CustomInsight) CustomInsightResponse {
	return CustomInsightResponse{
		ID:          insight.ID.String(),
		Name:        insight.Name,
		Description: insight.Description,
		Severity:    string(insight.Severity),
		IsActive:    insight.IsActive,
		InsightType: string(insight.InsightType),
		TemplateID:  insight.TemplateID,
		Condition:   toConditionResponse(insight.Condition),
		Formula:     insight.Formula,
	}
}

// ToCustomInsightListResponse converts a list of CustomInsight entities to a
// CustomInsightListResponse DTO.
func ToCustomInsightListResponse(insights []*entity.CustomInsight) CustomInsightListResponse {
	responses := make([]CustomInsightResponse, len(insights))
	for i, insight := range insights {
		responses[i] = ToCustomInsightResponse(insight)
	}
	return CustomInsightListResponse{Insights: responses}
}

// ToInsightTemplateListResponse converts the template catalog to an
// InsightTemplateListResponse DTO.
func ToInsightTemplateListResponse(templates []custominsight.InsightTemplate) InsightTemplateListResponse {
	responses := make([]InsightTemplateResponse, len(templates))
	for i, tpl := range templates {
		condition := toConditionResponse(&tpl.Condition)
		responses[i] = InsightTemplateResponse{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			Severity:    string(tpl.Severity),
			Condition:   *condition,
		}
	}
	return InsightTemplateListResponse{Templates: responses}
}
