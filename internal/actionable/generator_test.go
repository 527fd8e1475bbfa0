package actionable

import (
	"testing"

	"complaint-triage-go/internal/types"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		rec        types.ComplaintRecord
		dept, prio string
		action     string
	}{
		{
			rec:    types.ComplaintRecord{Issue: "toilet", Urgency: "urgent", Location: "Gate 12"},
			dept:   "Facilities",
			prio:   "P1",
			action: "Facilities: Dispatch toilet complaint at Gate 12",
		},
		{
			rec:    types.ComplaintRecord{Issue: "baggage", Urgency: "low", Location: "unknown"},
			dept:   "Baggage Services",
			prio:   "P3",
			action: "Baggage Services: Review baggage complaint location not stated; contact the passenger",
		},
		{
			rec:    types.ComplaintRecord{Issue: "general", Urgency: "normal", Location: "Terminal 2"},
			dept:   "Customer Service",
			prio:   "P2",
			action: "Customer Service: Review general complaint at Terminal 2",
		},
		{
			rec:  types.ComplaintRecord{Issue: "delay", Urgency: "immediate", Location: "unknown"},
			dept: "Flight Operations",
			prio: "P1",
		},
	}
	for _, tc := range cases {
		got := Generate(tc.rec)
		if got.Department != tc.dept || got.Priority != tc.prio {
			t.Errorf("Generate(%+v) = %+v, want %s/%s", tc.rec, got, tc.dept, tc.prio)
		}
		if tc.action != "" && got.Action != tc.action {
			t.Errorf("Action = %q, want %q", got.Action, tc.action)
		}
	}
}
