// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/insights"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// MonthlyInsightResponse represents one generated insight in API responses.
type MonthlyInsightResponse struct {
	Type            string         `json:"type"`
	Severity        string         `json:"severity"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Actionable      bool           `json:"actionable"`
	Data            map[string]any `json:"data,omitempty"`
	Source          string         `json:"source"`
	CustomInsightID *string        `json:"custom_insight_id,omitempty"`
}

// PeriodAggregateResponse represents one month's aggregate in API responses.
type PeriodAggregateResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpenses    string `json:"total_expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// ComparisonResponse represents month-over-month deltas in API responses.
type ComparisonResponse struct {
	IncomeChange      string `json:"income_change"`
	ExpensesChange    string `json:"expenses_change"`
	BalanceChange     string `json:"balance_change"`
	SavingsDifference string `json:"savings_difference"`
}

// AnalyticsResponse represents the comparative analytics in API responses.
type AnalyticsResponse struct {
	Current    PeriodAggregateResponse `json:"current"`
	Previous   PeriodAggregateResponse `json:"previous"`
	Comparison ComparisonResponse      `json:"comparison"`
}

// InsightEvaluationResponse represents the response of a monthly insights
// evaluation. Automatic and custom insights are kept in separate lists.
type InsightEvaluationResponse struct {
	Month             int                          `json:"month"`
	Year              int                          `json:"year"`
	Automatic         []MonthlyInsightResponse     `json:"automatic"`
	Custom            []MonthlyInsightResponse     `json:"custom"`
	Analytics         AnalyticsResponse            `json:"analytics"`
	CategoryBreakdown []insights.CategoryBreakdownItem `json:"category_breakdown"`
}

func toMonthlyInsightResponses(list []entity.MonthlyInsight) []MonthlyInsightResponse {
	responses := make([]MonthlyInsightResponse, len(list))
	for i, insight := range list {
		responses[i] = MonthlyInsightResponse{
			Type:        insight.Type,
			Severity:    string(insight.Severity),
			Title:       insight.Title,
			Description: insight.Description,
			Actionable:  insight.Actionable,
			Data:        insight.Data,
			Source:      string(insight.Source),
		}
		if insight.CustomInsightID != nil {
			id := insight.CustomInsightID.String()
			responses[i].CustomInsightID = &id
		}
	}
	return responses
}

func toPeriodAggregateResponse(agg *insights.PeriodAggregate) PeriodAggregateResponse {
	return PeriodAggregateResponse{
		TotalIncome:      agg.TotalIncome.String(),
		TotalExpenses:    agg.TotalExpenses.String(),
		Balance:          agg.Balance.String(),
		TransactionCount: agg.TransactionCount,
	}
}

// ToInsightEvaluationResponse converts an EvaluateMonthOutput to an
// InsightEvaluationResponse DTO.
func ToInsightEvaluationResponse(month, year int, output *insights.EvaluateMonthOutput) InsightEvaluationResponse {
	return InsightEvaluationResponse{
		Month:     month,
		Year:      year,
		Automatic: toMonthlyInsightResponses(output.Automatic),
		Custom:    toMonthlyInsightResponses(output.Custom),
		Analytics: AnalyticsResponse{
			Current:  toPeriodAggregateResponse(output.Analytics.Current),
			Previous: toPeriodAggregateResponse(output.Analytics.Previous),
			Comparison: ComparisonResponse{
				IncomeChange:      output.Analytics.Comparison.IncomeChange.String(),
				ExpensesChange:    output.Analytics.Comparison.ExpensesChange.String(),
				BalanceChange:     output.Analytics.Comparison.BalanceChange.String(),
				SavingsDifference: output.Analytics.Comparison.SavingsDifference.String(),
			},
		},
		CategoryBreakdown: output.CategoryBreakdown,
	}
}
