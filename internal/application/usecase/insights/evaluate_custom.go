// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"fmt"
	"log/slog"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// EvaluateCustomInsight decides trigger/no-trigger for one custom insight
// against the period snapshot. It is a pure function over its inputs and is
// the unit-testable seam of the custom evaluator.
//
// A structured condition that references unsupported fields, operators or
// functions returns a typed InsightError; the caller decides whether to log
// or surface it. A formula that does not match the restricted grammar is not
// an error: it never triggers and is logged as unrecognized.
func EvaluateCustomInsight(insight *entity.CustomInsight, data *PeriodData) (*Evaluation, error) {
	switch {
	case insight.Condition != nil:
		return evaluateCondition(insight.Condition, data)

	case insight.Formula != "":
		triggered, recognized := evaluateFormula(insight.Formula, data)
		if !recognized {
			slog.Warn("custom insight formula not recognized",
				"insightID", insight.ID,
				"formula", insight.Formula,
			)
			return &Evaluation{Triggered: false}, nil
		}
		return &Evaluation{
			Triggered: triggered,
			Message:   fmt.Sprintf("Condição personalizada atendida: %s", insight.Formula),
			Data: map[string]any{
				"formula": insight.Formula,
			},
		}, nil

	default:
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightMissingRule,
			"custom insight has neither condition nor formula",
			domainerror.ErrInsightMissingRule,
		)
	}
}

// EvaluateCustomInsights runs every active custom insight of the batch over
// the same snapshot. Errors from a single insight are converted to log
// entries at this loop boundary: one malformed insight never blocks the rest
// of the batch nor the automatic rules.
func EvaluateCustomInsights(insights []*entity.CustomInsight, data *PeriodData) []entity.MonthlyInsight {
	out := make([]entity.MonthlyInsight, 0, len(insights))

	for _, ci := range insights {
		if !ci.IsActive {
			continue
		}

		eval, err := EvaluateCustomInsight(ci, data)
		if err != nil {
			slog.Error("custom insight evaluation failed",
				"insightID", ci.ID,
				"name", ci.Name,
				"error", err,
			)
			continue
		}
		if !eval.Triggered {
			continue
		}

		description := eval.Message
		if ci.Description != "" {
			description = ci.Description
		}

		id := ci.ID
		out = append(out, entity.MonthlyInsight{
			Type:            InsightTypeCustom,
			Severity:        ci.Severity,
			Title:           ci.Name,
			Description:     description,
			Actionable:      ci.Severity == entity.InsightSeverityWarning || ci.Severity == entity.InsightSeverityError,
			Data:            eval.Data,
			Source:          entity.InsightSourceCustom,
			CustomInsightID: &id,
		})
	}

	return out
}
