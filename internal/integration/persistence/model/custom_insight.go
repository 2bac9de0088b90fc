// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// InsightConditionJSON represents the JSONB structure of a structured
// trigger condition. The literal threshold keeps the "value" JSON key; the
// Go field cannot be named Value because of the driver.Valuer method.
type InsightConditionJSON struct {
	Field    string           `json:"field"`
	Operator string           `json:"operator"`
	Literal  *decimal.Decimal `json:"value,omitempty"`
	Function *string          `json:"function,omitempty"`
	Category string           `json:"category,omitempty"`
}

// Value implements the driver.Valuer interface.
func (c InsightConditionJSON) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface.
func (c *InsightConditionJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return errors.New("unsupported type for InsightConditionJSON")
	}
}

// CustomInsightModel represents the custom_insights table in the database.
type CustomInsightModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name        string                `gorm:"type:varchar(100);not null"`
	Description string                `gorm:"type:text"`
	Severity    string                `gorm:"type:varchar(10);not null"`
	IsActive    bool                  `gorm:"default:true;index"`
	InsightType string                `gorm:"type:varchar(10);not null"`
	TemplateID  string                `gorm:"type:varchar(50)"`
	Condition   *InsightConditionJSON `gorm:"type:jsonb"`
	Formula     string                `gorm:"type:text"`
	CreatedAt   time.Time             `gorm:"not null"`
	UpdatedAt   time.Time             `gorm:"not null"`
}

// TableName returns the table name for the CustomInsightModel.
func (CustomInsightModel) TableName() string {
	return "custom_insights"
}

// ToEntity converts a CustomInsightModel to a domain CustomInsight entity.
func (m *CustomInsightModel) ToEntity() *entity.CustomInsight {
	var condition *entity.InsightCondition
	if m.Condition != nil {
		condition = &entity.InsightCondition{
			Field:    entity.ConditionField(m.Condition.Field),
			Operator: entity.ConditionOperator(m.Condition.Operator),
			Value:    m.Condition.Literal,
			Category: m.Condition.Category,
		}
		if m.Condition.Function != nil {
			fn := entity.ConditionFunction(*m.Condition.Function)
			condition.Function = &fn
		}
	}

	return &entity.CustomInsight{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Severity:    entity.InsightSeverity(m.Severity),
		IsActive:    m.IsActive,
		InsightType: entity.CustomInsightType(m.InsightType),
		TemplateID:  m.TemplateID,
		Condition:   condition,
		Formula:     m.Formula,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CustomInsightFromEntity creates a CustomInsightModel from a domain CustomInsight entity.
func CustomInsightFromEntity(insight *entity.CustomInsight) *CustomInsightModel {
	var condition *InsightConditionJSON
	if insight.Condition != nil {
		condition = &InsightConditionJSON{
			Field:    string(insight.Condition.Field),
			Operator: string(insight.Condition.Operator),
			Literal:  insight.Condition.Value,
			Category: insight.Condition.Category,
		}
		if insight.Condition.Function != nil {
			fn := string(*insight.Condition.Function)
			condition.Function = &fn
		}
	}

	return &CustomInsightModel{
		ID:          insight.ID,
		UserID:      insight.UserID,
		Name:        insight.Name,
		Description: insight.Description,
		Severity:    string(insight.Severity),
		IsActive:    insight.IsActive,
		InsightType: string(insight.InsightType),
		TemplateID:  insight.TemplateID,
		Condition:   condition,
		Formula:     insight.Formula,
		CreatedAt:   insight.CreatedAt,
		UpdatedAt:   insight.UpdatedAt,
	}
}
