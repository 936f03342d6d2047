package actions

import (
	"climateplanner/internal/types"
)

// catalog maps each hazard to its recommended mitigation actions. Entries are
// reference data shared read-only across plans; ActionsFor and Templates copy
// before returning.
var catalog = map[types.Hazard][]types.ActionItem{
	types.HazardFlood: {
		{
			Title:         "Install Flood Barriers",
			Description:   "Install flood barriers or sandbags around vulnerable entry points",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 500,
			ImpactScore:   80,
			Timeframe:     types.TimeframeImmediate,
		},
		{
			Title:         "Elevate Critical Systems",
			Description:   "Raise electrical panels, HVAC systems, and appliances above potential flood levels",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 2000,
			ImpactScore:   85,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Improve Drainage",
			Description:   "Clear gutters and improve yard drainage to redirect water away from structures",
			Category:      types.CategoryMaintenance,
			Priority:      types.PriorityMedium,
			EstimatedCost: 300,
			ImpactScore:   60,
			Timeframe:     types.TimeframeImmediate,
		},
		{
			Title:         "Purchase Flood Insurance",
			Description:   "Obtain flood insurance coverage for property protection",
			Category:      types.CategoryFinancial,
			Priority:      types.PriorityHigh,
			EstimatedCost: 1000,
			ImpactScore:   90,
			Timeframe:     types.TimeframeImmediate,
		},
	},
	types.HazardWildfire: {
		{
			Title:         "Create Defensible Space",
			Description:   "Clear vegetation within 30 feet of structures to create a defensible space",
			Category:      types.CategoryLandscaping,
			Priority:      types.PriorityCritical,
			EstimatedCost: 800,
			ImpactScore:   90,
			Timeframe:     types.TimeframeImmediate,
		},
		{
			Title:         "Use Fire-Resistant Materials",
			Description:   "Replace roof and siding with fire-resistant materials",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 5000,
			ImpactScore:   85,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Install Fire Detection Systems",
			Description:   "Install smoke detectors and fire suppression systems",
			Category:      types.CategorySafety,
			Priority:      types.PriorityHigh,
			EstimatedCost: 1500,
			ImpactScore:   75,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Prepare Evacuation Kit",
			Description:   "Prepare emergency evacuation kit with essentials and important documents",
			Category:      types.CategoryPreparedness,
			Priority:      types.PriorityCritical,
			EstimatedCost: 200,
			ImpactScore:   80,
			Timeframe:     types.TimeframeImmediate,
		},
	},
	types.HazardHurricane: {
		{
			Title:         "Install Storm Shutters",
			Description:   "Install hurricane shutters or impact-resistant windows",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 3000,
			ImpactScore:   85,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Reinforce Roof",
			Description:   "Strengthen roof structure and secure roof shingles",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 4000,
			ImpactScore:   80,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Secure Outdoor Items",
			Description:   "Create plan to secure or store outdoor furniture and equipment",
			Category:      types.CategoryPreparedness,
			Priority:      types.PriorityMedium,
			EstimatedCost: 100,
			ImpactScore:   60,
			Timeframe:     types.TimeframeImmediate,
		},
		{
			Title:         "Stock Emergency Supplies",
			Description:   "Maintain 7-day supply of water, food, and medications",
			Category:      types.CategoryPreparedness,
			Priority:      types.PriorityCritical,
			EstimatedCost: 300,
			ImpactScore:   90,
			Timeframe:     types.TimeframeImmediate,
		},
	},
	types.HazardDrought: {
		{
			Title:         "Install Water-Efficient Fixtures",
			Description:   "Replace fixtures with low-flow toilets, faucets, and showerheads",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityMedium,
			EstimatedCost: 600,
			ImpactScore:   70,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Implement Rainwater Harvesting",
			Description:   "Install rainwater collection system for irrigation",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityMedium,
			EstimatedCost: 1500,
			ImpactScore:   75,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Plant Drought-Resistant Vegetation",
			Description:   "Replace lawn with native, drought-tolerant plants",
			Category:      types.CategoryLandscaping,
			Priority:      types.PriorityHigh,
			EstimatedCost: 1000,
			ImpactScore:   80,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Optimize Irrigation",
			Description:   "Install smart irrigation controllers and drip irrigation systems",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityMedium,
			EstimatedCost: 800,
			ImpactScore:   70,
			Timeframe:     types.TimeframeShortTerm,
		},
	},
	types.HazardHeatwave: {
		{
			Title:         "Improve Home Insulation",
			Description:   "Add insulation to attic and walls to maintain cool temperatures",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 2000,
			ImpactScore:   75,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Install Reflective Roofing",
			Description:   "Use cool roof technology or reflective coating to reduce heat absorption",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityMedium,
			EstimatedCost: 3500,
			ImpactScore:   70,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Plant Shade Trees",
			Description:   "Plant trees strategically to provide natural cooling and shade",
			Category:      types.CategoryLandscaping,
			Priority:      types.PriorityMedium,
			EstimatedCost: 400,
			ImpactScore:   65,
			Timeframe:     types.TimeframeLongTerm,
		},
		{
			Title:         "Upgrade HVAC System",
			Description:   "Install energy-efficient air conditioning with backup power",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 5000,
			ImpactScore:   85,
			Timeframe:     types.TimeframeMediumTerm,
		},
	},
	types.HazardSeaLevelRise: {
		{
			Title:         "Elevate Property",
			Description:   "Raise foundation or consider relocation for long-term protection",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 15000,
			ImpactScore:   90,
			Timeframe:     types.TimeframeLongTerm,
		},
		{
			Title:         "Install Coastal Barriers",
			Description:   "Build seawalls or living shorelines for erosion protection",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityHigh,
			EstimatedCost: 10000,
			ImpactScore:   80,
			Timeframe:     types.TimeframeMediumTerm,
		},
		{
			Title:         "Improve Drainage Systems",
			Description:   "Install pumps and enhanced drainage to manage water intrusion",
			Category:      types.CategoryInfrastructure,
			Priority:      types.PriorityMedium,
			EstimatedCost: 3000,
			ImpactScore:   70,
			Timeframe:     types.TimeframeShortTerm,
		},
		{
			Title:         "Review Insurance Coverage",
			Description:   "Ensure adequate flood and coastal property insurance",
			Category:      types.CategoryFinancial,
			Priority:      types.PriorityCritical,
			EstimatedCost: 1500,
			ImpactScore:   85,
			Timeframe:     types.TimeframeImmediate,
		},
	},
}

// generalActions apply to every plan regardless of which hazards rank.
var generalActions = []types.ActionItem{
	{
		Title:         "Create Emergency Plan",
		Description:   "Develop a family emergency plan with evacuation routes and meeting points",
		Category:      types.CategoryPreparedness,
		Priority:      types.PriorityCritical,
		EstimatedCost: 0,
		ImpactScore:   85,
		Timeframe:     types.TimeframeImmediate,
	},
	{
		Title:         "Build Emergency Kit",
		Description:   "Assemble emergency supplies: water, food, first aid, flashlight, radio",
		Category:      types.CategoryPreparedness,
		Priority:      types.PriorityCritical,
		EstimatedCost: 150,
		ImpactScore:   90,
		Timeframe:     types.TimeframeImmediate,
	},
	{
		Title:         "Document Property",
		Description:   "Take photos/videos of property and belongings for insurance purposes",
		Category:      types.CategoryPreparedness,
		Priority:      types.PriorityHigh,
		EstimatedCost: 0,
		ImpactScore:   70,
		Timeframe:     types.TimeframeImmediate,
	},
}

// Templates returns the full catalog keyed by hazard, in canonical hazard
// order, plus the general preparedness entries under the "general" key. The
// returned map and slices are copies.
func Templates() map[string][]types.ActionItem {
	out := make(map[string][]types.ActionItem, len(catalog)+1)
	for _, h := range types.AllHazards {
		out[string(h)] = append([]types.ActionItem(nil), catalog[h]...)
	}
	out["general"] = append([]types.ActionItem(nil), generalActions...)
	return out
}

// ActionsFor returns catalog actions for a hazard filtered by the risk score
// tier: above 70 every entry qualifies, above 40 only critical and high
// priority entries, otherwise critical entries only. Unknown hazards yield an
// empty slice.
func ActionsFor(hazard types.Hazard, score float64) []types.ActionItem {
	entries := catalog[hazard]

	switch {
	case score > 70:
		return append([]types.ActionItem(nil), entries...)
	case score > 40:
		out := make([]types.ActionItem, 0, len(entries))
		for _, a := range entries {
			if a.Priority == types.PriorityCritical || a.Priority == types.PriorityHigh {
				out = append(out, a)
			}
		}
		return out
	default:
		out := make([]types.ActionItem, 0, len(entries))
		for _, a := range entries {
			if a.Priority == types.PriorityCritical {
				out = append(out, a)
			}
		}
		return out
	}
}
