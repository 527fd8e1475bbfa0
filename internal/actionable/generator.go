package actionable

import (
	"fmt"

	"complaint-triage-go/internal/types"
)

var departments = map[string]string{
	"baggage":     "Baggage Services",
	"delay":       "Flight Operations",
	"gate":        "Flight Operations",
	"cleaning":    "Facilities",
	"toilet":      "Facilities",
	"maintenance": "Maintenance",
	"security":    "Security",
	"staff":       "Customer Service",
}

// Generate routes a complaint to the owning department with a priority.
func Generate(rec types.ComplaintRecord) types.ActionCard {
	dept, ok := departments[rec.Issue]
	if !ok {
		dept = "Customer Service"
	}

	priority := "P2"
	switch rec.Urgency {
	case "urgent", "immediate", "high":
		priority = "P1"
	case "low":
		priority = "P3"
	}

	where := "location not stated; contact the passenger"
	if rec.Location != "" && rec.Location != "unknown" {
		where = "at " + rec.Location
	}

	verb := "Review"
	if priority == "P1" {
		verb = "Dispatch"
	}
	return types.ActionCard{
		Department: dept,
		Priority:   priority,
		Action:     fmt.Sprintf("%s: %s %s complaint %s", dept, verb, rec.Issue, where),
	}
}
