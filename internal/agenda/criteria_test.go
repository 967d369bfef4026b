package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature_IdenticalCriteriaMatch(t *testing.T) {
	a := Criteria{
		Search:   "leak",
		Status:   "open",
		Property: "villa-9",
		Period:   Period{Preset: PresetThisWeek},
	}
	b := Criteria{
		Search:   "leak",
		Status:   "open",
		Property: "villa-9",
		Period:   Period{Preset: PresetThisWeek},
	}

	assert.Equal(t, a.Signature(), b.Signature())
}

func TestSignature_AnyFacetChangeDiffers(t *testing.T) {
	base := Criteria{
		Search:   "leak",
		Status:   "open",
		Assignee: "sam",
		Property: "villa-9",
		Category: "plumbing",
		Period:   Period{Preset: PresetThisWeek},
	}

	variants := map[string]Criteria{}

	v := base
	v.Search = "drip"
	variants["search"] = v

	v = base
	v.Status = "done"
	variants["status"] = v

	v = base
	v.Assignee = "alex"
	variants["assignee"] = v

	v = base
	v.Property = "villa-2"
	variants["property"] = v

	v = base
	v.Category = "hvac"
	variants["category"] = v

	v = base
	v.Period = Period{Preset: PresetToday}
	variants["period"] = v

	for name, variant := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base.Signature(), variant.Signature())
		})
	}
}

func TestSignature_EmptyFacetEqualsWildcard(t *testing.T) {
	// "" and "all" both mean "no constraint" for exact-match facets
	blank := Criteria{Period: Period{Preset: PresetAll}}
	wildcard := Criteria{
		Status:   FacetAll,
		Assignee: FacetAll,
		Property: FacetAll,
		Category: FacetAll,
		Period:   Period{Preset: PresetAll},
	}

	assert.Equal(t, blank.Signature(), wildcard.Signature())
}

func TestSignature_CustomBoundsIncluded(t *testing.T) {
	a := Criteria{Period: Period{Preset: PresetCustom, CustomStart: "2024-01-01", CustomEnd: "2024-01-31"}}
	b := Criteria{Period: Period{Preset: PresetCustom, CustomStart: "2024-01-01", CustomEnd: "2024-02-29"}}

	assert.NotEqual(t, a.Signature(), b.Signature())
}
