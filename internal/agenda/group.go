package agenda

import (
	"sort"
	"strings"
	"time"
)

// DateKey identifies a calendar day (YYYY-MM-DD). The zero value marks
// entities with no usable date.
type DateKey string

// UndatedKey groups entities whose relevant date is missing or
// unparseable. They only appear when no period constraint is active.
const UndatedKey DateKey = ""

// Time parses the key back into a midnight timestamp in loc
func (k DateKey) Time(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, string(k), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayGroup is one agenda day bucket
type DayGroup[T any] struct {
	Key   DateKey
	Items []T
}

// Facets holds an entity's exact-match facet values
type Facets struct {
	Status   string
	Assignee string
	Property string
	Category string
}

// Adapter wires a concrete entity type into the agenda pipeline: which
// field supplies the relevant calendar day, what free-text search matches
// against, the entity's facet values, and the within-day sort key.
type Adapter[T any] struct {
	// ID returns a stable identifier, used as the final sort tie-break
	// and by the change detector.
	ID func(T) int64
	// Day returns the relevant calendar day, or ok=false when the date
	// field is missing or unparseable.
	Day func(T) (DateKey, bool)
	// SortTime orders items within a day (e.g. a scheduled slot).
	// Entities without one should return their creation time so the
	// order is still deterministic.
	SortTime func(T) int64
	// Search returns the fields substring search matches against.
	Search func(T) []string
	// Facets returns the entity's exact-match facet values.
	Facets func(T) Facets
}

// Group applies c to entities and partitions the survivors into day
// buckets, ascending by day. Within a bucket items are ordered by
// (SortTime, ID) so repeated calls with the same input always produce
// the same sequence and pagination never reorders rendered items.
//
// Entities without a usable date are excluded whenever a period
// constraint is active; under "all" they surface in a trailing
// UndatedKey bucket. Group never fails: a malformed entity is excluded,
// not propagated.
func Group[T any](entities []T, c Criteria, now time.Time, ad Adapter[T]) []DayGroup[T] {
	interval := Resolve(c.Period, now)

	buckets := make(map[DateKey][]T)
	for _, e := range entities {
		key, dated := ad.Day(e)
		if interval != nil {
			if !dated {
				continue
			}
			day, ok := key.Time(now.Location())
			if !ok || !interval.Contains(day) {
				continue
			}
		} else if !dated {
			key = UndatedKey
		}
		if !matches(e, c, ad) {
			continue
		}
		buckets[key] = append(buckets[key], e)
	}

	groups := make([]DayGroup[T], 0, len(buckets))
	for key, items := range buckets {
		sort.SliceStable(items, func(i, j int) bool {
			ti, tj := ad.SortTime(items[i]), ad.SortTime(items[j])
			if ti != tj {
				return ti < tj
			}
			return ad.ID(items[i]) < ad.ID(items[j])
		})
		groups = append(groups, DayGroup[T]{Key: key, Items: items})
	}

	sort.Slice(groups, func(i, j int) bool {
		// UndatedKey sorts last, not first
		if groups[i].Key == UndatedKey {
			return false
		}
		if groups[j].Key == UndatedKey {
			return true
		}
		return groups[i].Key < groups[j].Key
	})

	return groups
}

// matches applies the search facet and each active exact-match facet as
// an AND-combination
func matches[T any](e T, c Criteria, ad Adapter[T]) bool {
	if c.Search != "" && !searchMatches(ad.Search(e), c.Search) {
		return false
	}
	f := ad.Facets(e)
	if facetActive(c.Status) && f.Status != c.Status {
		return false
	}
	if facetActive(c.Assignee) && f.Assignee != c.Assignee {
		return false
	}
	if facetActive(c.Property) && f.Property != c.Property {
		return false
	}
	if facetActive(c.Category) && f.Category != c.Category {
		return false
	}
	return true
}

func searchMatches(fields []string, query string) bool {
	needle := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// TotalItems counts the items across all groups
func TotalItems[T any](groups []DayGroup[T]) int {
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	return total
}
