package readiness

import "strings"

// CategoryCost is the weight and time estimate attached to an action category.
type CategoryCost struct {
	Weight        int
	EstimatedTime string
}

var fallbackCost = CategoryCost{Weight: 10, EstimatedTime: "to be determined"}

var categoryCosts = map[string]CategoryCost{
	"CERTIFICATION": {Weight: 20, EstimatedTime: "1-2 months"},
	"PROJECT":       {Weight: 15, EstimatedTime: "2-4 weeks"},
	"EXPERIENCE":    {Weight: 15, EstimatedTime: "variable"},
	"SKILL":         {Weight: 10, EstimatedTime: "2-3 weeks"},
	"PORTFOLIO":     {Weight: 10, EstimatedTime: "1-2 weeks"},
	"NETWORKING":    {Weight: 15, EstimatedTime: "1-2 weeks"},
	"CV":            {Weight: 10, EstimatedTime: "1 week"},
	"INTERVIEW":     {Weight: 5, EstimatedTime: "1 week"},
}

// CostOf looks up a category case-insensitively. Unknown or empty categories
// get the fallback cost.
func CostOf(category string) CategoryCost {
	if c, ok := categoryCosts[strings.ToUpper(strings.TrimSpace(category))]; ok {
		return c
	}
	return fallbackCost
}

// Categories lists the known category keys.
func Categories() []string {
	out := make([]string, 0, len(categoryCosts))
	for k := range categoryCosts {
		out = append(out, k)
	}
	return out
}

// PriorityAt derives priority from position: the first 30% of the list is
// high, the next 40% medium and the rest low.
func PriorityAt(index, total int) Priority {
	if total <= 0 {
		return PriorityMedium
	}
	switch {
	case float64(index) < float64(total)*0.3:
		return PriorityHigh
	case float64(index) < float64(total)*0.7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Suggestion is an action proposed by the generator before it is costed.
type Suggestion struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

// BuildActions costs and prioritises suggestions in order. Every returned
// action starts incomplete.
func BuildActions(suggestions []Suggestion) []ActionItem {
	actions := make([]ActionItem, len(suggestions))
	for i, s := range suggestions {
		cost := CostOf(s.Category)
		actions[i] = ActionItem{
			Label:         s.Label,
			Category:      s.Category,
			Weight:        cost.Weight,
			EstimatedTime: cost.EstimatedTime,
			Priority:      PriorityAt(i, len(suggestions)),
			OrderIndex:    i,
		}
	}
	return actions
}
