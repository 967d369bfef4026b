package agenda

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id  int64
	day string
}

// grid builds groups with the given number of items per day key
func grid(perDay map[string]int) []DayGroup[item] {
	var groups []DayGroup[item]
	var id int64
	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	// deterministic build order
	sort.Strings(days)
	for _, d := range days {
		g := DayGroup[item]{Key: DateKey(d)}
		for k := 0; k < perDay[d]; k++ {
			id++
			g.Items = append(g.Items, item{id: id, day: d})
		}
		groups = append(groups, g)
	}
	return groups
}

func flatten(groups []DayGroup[item]) []int64 {
	var ids []int64
	for _, g := range groups {
		for _, it := range g.Items {
			ids = append(ids, it.id)
		}
	}
	return ids
}

func TestPage_FortyFiveItemsInPagesOfTwenty(t *testing.T) {
	groups := grid(map[string]int{
		"2024-03-10": 15,
		"2024-03-11": 15,
		"2024-03-12": 15,
	})
	pager := NewPager(20)
	pager.Sync("sig")

	// First page
	res := Page(groups, pager.DisplayCount())
	assert.Equal(t, 45, res.TotalItems)
	assert.Len(t, flatten(res.Visible), 20)
	assert.True(t, res.HasMore)

	// Second page
	pager.LoadMore(res.TotalItems)
	res = Page(groups, pager.DisplayCount())
	assert.Len(t, flatten(res.Visible), 40)
	assert.True(t, res.HasMore)

	// Final page
	pager.LoadMore(res.TotalItems)
	res = Page(groups, pager.DisplayCount())
	assert.Len(t, flatten(res.Visible), 45)
	assert.False(t, res.HasMore)
}

func TestPage_CutsMidGroup(t *testing.T) {
	groups := grid(map[string]int{
		"2024-03-10": 15,
		"2024-03-11": 15,
	})

	res := Page(groups, 20)

	// The cut lands inside the second day: it shows 5 of its 15 items
	require.Len(t, res.Visible, 2)
	assert.Len(t, res.Visible[0].Items, 15)
	assert.Len(t, res.Visible[1].Items, 5)
}

func TestPage_PrefixStable(t *testing.T) {
	groups := grid(map[string]int{
		"2024-03-10": 7,
		"2024-03-11": 13,
		"2024-03-12": 9,
		"2024-03-13": 16,
	})
	total := TotalItems(groups)

	for k := 0; k+5 <= total; k += 5 {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			smaller := flatten(Page(groups, k).Visible)
			larger := flatten(Page(groups, k+5).Visible)

			require.GreaterOrEqual(t, len(larger), len(smaller))
			assert.Equal(t, smaller, larger[:len(smaller)],
				"previously visible items must never disappear or reorder")
		})
	}
}

func TestPager_SyncResetsOnSignatureChange(t *testing.T) {
	pager := NewPager(20)
	pager.Sync("status=open")
	pager.LoadMore(100)
	pager.LoadMore(100)
	require.Equal(t, 60, pager.DisplayCount())

	// Same signature: no reset
	pager.Sync("status=open")
	assert.Equal(t, 60, pager.DisplayCount())

	// New signature: back to one page
	pager.Sync("status=done")
	assert.Equal(t, 20, pager.DisplayCount())
}

func TestPager_LoadMoreCapsAtTotal(t *testing.T) {
	pager := NewPager(20)
	pager.Sync("sig")

	pager.LoadMore(33)
	assert.Equal(t, 33, pager.DisplayCount())

	pager.LoadMore(33)
	assert.Equal(t, 33, pager.DisplayCount())
}

func TestPager_SmallCollectionKeepsOnePage(t *testing.T) {
	// Fewer items than a page: display count stays at the page size so a
	// growing collection is picked up without a LoadMore
	pager := NewPager(20)
	pager.Sync("sig")

	pager.LoadMore(5)
	assert.Equal(t, 20, pager.DisplayCount())
}

func TestPage_EmptyGroups(t *testing.T) {
	res := Page([]DayGroup[item]{}, 20)

	assert.Empty(t, res.Visible)
	assert.False(t, res.HasMore)
	assert.Equal(t, 0, res.TotalItems)
}

func TestNewPager_DefaultsOnBadPageSize(t *testing.T) {
	pager := NewPager(0)
	assert.Equal(t, DefaultPageSize, pager.PageSize())
	assert.Equal(t, DefaultPageSize, pager.DisplayCount())
}
