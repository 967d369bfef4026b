package agenda

import (
	"strings"
)

// FacetAll is the universal wildcard for an exact-match facet
const FacetAll = "all"

// Criteria is the complete filter state for an agenda view: free-text
// search, the exact-match facets, and the selected period. It is a value
// type; UI code builds a new Criteria on every change.
type Criteria struct {
	Search   string
	Status   string
	Assignee string
	Property string
	Category string
	Period   Period
}

// Signature returns the canonical string form of the criteria. Any facet
// change produces a different signature and identical criteria always
// produce the same one, so downstream state (pagination, change
// detection) can key resets off signature equality alone.
//
// An empty facet and the explicit "all" wildcard mean the same thing and
// normalize to the same signature.
func (c Criteria) Signature() string {
	var sb strings.Builder
	sb.WriteString("search=")
	sb.WriteString(c.Search)
	sb.WriteString("|status=")
	sb.WriteString(normalizeFacet(c.Status))
	sb.WriteString("|assignee=")
	sb.WriteString(normalizeFacet(c.Assignee))
	sb.WriteString("|property=")
	sb.WriteString(normalizeFacet(c.Property))
	sb.WriteString("|category=")
	sb.WriteString(normalizeFacet(c.Category))
	sb.WriteString("|period=")
	sb.WriteString(string(c.Period.Preset))
	if c.Period.Preset == PresetCustom {
		sb.WriteString(":")
		sb.WriteString(c.Period.CustomStart)
		sb.WriteString(":")
		sb.WriteString(c.Period.CustomEnd)
	}
	return sb.String()
}

// facetActive reports whether an exact-match facet constrains results
func facetActive(value string) bool {
	return value != "" && value != FacetAll
}

func normalizeFacet(value string) string {
	if value == "" {
		return FacetAll
	}
	return value
}
