// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// InsightSource tells whether an insight came from the fixed automatic rules
// or from a user-authored custom insight.
type InsightSource string

const (
	InsightSourceAutomatic InsightSource = "automatic"
	InsightSourceCustom    InsightSource = "custom"
)

// MonthlyInsight is a generated alert describing a notable financial
// condition for a period. It is ephemeral: regenerated on every evaluation
// request and never persisted.
type MonthlyInsight struct {
	Type            string
	Severity        InsightSeverity
	Title           string
	Description     string
	Actionable      bool
	Data            map[string]any
	Source          InsightSource
	CustomInsightID *uuid.UUID
}
