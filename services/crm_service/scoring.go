package crm_service

import (
	"math"
	"time"
)

// The engagement and churn scores blend recency, frequency and spend into a
// 0-100 figure. They are heuristic labels for the back office, not model
// outputs.

// engagementScore rates a customer from recency of their last activity,
// visit frequency and lifetime spend.
func engagementScore(lastActivity *time.Time, visits int, totalSpent float64, now time.Time) float64 {
	recency := 0.0
	if lastActivity != nil {
		daysSince := now.Sub(*lastActivity).Hours() / 24
		switch {
		case daysSince <= 7:
			recency = 40
		case daysSince <= 30:
			recency = 30
		case daysSince <= 90:
			recency = 15
		}
	}

	frequency := math.Min(float64(visits)*3, 30)
	monetary := math.Min(totalSpent/100, 30)

	return math.Min(recency+frequency+monetary, 100)
}

// churnRisk estimates abandonment likelihood, driven by inactivity and damped
// by visit history.
func churnRisk(lastActivity *time.Time, visits int, now time.Time) float64 {
	if lastActivity == nil {
		return 90
	}

	daysSince := now.Sub(*lastActivity).Hours() / 24
	risk := 0.0
	switch {
	case daysSince > 180:
		risk = 90
	case daysSince > 90:
		risk = 70
	case daysSince > 30:
		risk = 40
	case daysSince > 14:
		risk = 20
	default:
		risk = 5
	}

	// Loyal repeat customers are less likely to walk away at the same
	// inactivity level.
	if visits > 10 {
		risk *= 0.7
	} else if visits > 3 {
		risk *= 0.85
	}

	return math.Round(risk)
}
