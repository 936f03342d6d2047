// Package actions builds prioritized mitigation plans from risk assessments
// using a fixed per-hazard action catalog.
package actions

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"climateplanner/internal/types"
)

// Planner assembles action plans. It is stateless apart from the injected
// clock, so a single instance is safe for concurrent use.
type Planner struct {
	clock types.Clock
}

func NewPlanner(clock types.Clock) *Planner {
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Planner{clock: clock}
}

// Templates exposes the static catalog through the planner so callers can
// hold a single dependency for planning and template listing alike.
func (p *Planner) Templates() map[string][]types.ActionItem {
	return Templates()
}

// Plan selects catalog actions for each ranked hazard, appends the general
// preparedness actions, and orders the result by priority rank then impact
// score, both descending. Entries selected for more than one hazard are kept
// as duplicates. A nil or empty input still yields the three general actions.
func (p *Planner) Plan(input *types.PlanInput, profile *types.UserProfile) *types.ActionPlan {
	if input == nil {
		input = &types.PlanInput{}
	}

	location := input.Location
	if location == "" {
		location = "Unknown"
	}
	level := input.RiskLevel
	if level == "" {
		level = types.RiskLevelModerate
	}

	var selected []types.ActionItem
	for _, risk := range input.TopRisks {
		selected = append(selected, ActionsFor(risk.Type, risk.Score)...)
	}
	selected = append(selected, generalActions...)

	// Ties keep their selection order, so hazard-ranked actions stay ahead
	// of the general entries at equal rank and impact.
	sort.SliceStable(selected, func(i, j int) bool {
		ri, rj := selected[i].Priority.Rank(), selected[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return selected[i].ImpactScore > selected[j].ImpactScore
	})

	var totalCost, impactSum float64
	for _, a := range selected {
		totalCost += a.EstimatedCost
		impactSum += a.ImpactScore
	}
	avgImpact := 0.0
	if len(selected) > 0 {
		avgImpact = impactSum / float64(len(selected))
	}

	return &types.ActionPlan{
		ID:           uuid.NewString(),
		Location:     location,
		RiskLevel:    level,
		Actions:      selected,
		TotalActions: len(selected),
		TotalCost:    round2(totalCost),
		AvgImpact:    round2(avgImpact),
		Timeline:     buildTimeline(selected),
		GeneratedAt:  p.clock.Now(),
	}
}

// buildTimeline buckets action titles by implementation phase. All four
// phases are always present, empty or not; actions without a timeframe fall
// into short-term.
func buildTimeline(actionList []types.ActionItem) map[types.Timeframe][]string {
	timeline := make(map[types.Timeframe][]string, len(types.AllTimeframes))
	for _, tf := range types.AllTimeframes {
		timeline[tf] = []string{}
	}

	for _, a := range actionList {
		tf := a.Timeframe
		if tf == "" {
			tf = types.TimeframeShortTerm
		}
		timeline[tf] = append(timeline[tf], a.Title)
	}

	return timeline
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
