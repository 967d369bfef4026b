package agenda

// Pager tracks how many items of a grouped agenda are currently shown.
// The display count only grows while the filter signature stays the
// same; any signature change snaps it back to one page.
type Pager struct {
	pageSize     int
	displayCount int
	resetKey     string
}

// DefaultPageSize is the number of items revealed per load
const DefaultPageSize = 20

// NewPager creates a Pager showing one page of pageSize items
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize, displayCount: pageSize}
}

// Sync resets the pager to a single page if signature differs from the
// one it last saw. Safe to call on every recomputation; identical
// signatures are a no-op.
func (p *Pager) Sync(signature string) {
	if p.resetKey != signature {
		p.resetKey = signature
		p.displayCount = p.pageSize
	}
}

// LoadMore reveals one more page, capped at total items
func (p *Pager) LoadMore(total int) {
	p.displayCount += p.pageSize
	if p.displayCount > total {
		p.displayCount = total
	}
	if p.displayCount < p.pageSize {
		p.displayCount = p.pageSize
	}
}

// DisplayCount returns the current number of visible items
func (p *Pager) DisplayCount() int {
	return p.displayCount
}

// PageSize returns the configured page size
func (p *Pager) PageSize() int {
	return p.pageSize
}

// PageResult is the visible slice of a grouped agenda
type PageResult[T any] struct {
	Visible    []DayGroup[T]
	HasMore    bool
	TotalItems int
}

// Page returns the first displayCount items of groups, re-bucketed by
// day. The prefix is taken over the flattened item sequence, not whole
// groups, so a day straddling the cut shows only its leading items.
// For a fixed input and growing displayCount the visible sequence is
// prefix-stable: already revealed items never move or disappear.
func Page[T any](groups []DayGroup[T], displayCount int) PageResult[T] {
	total := TotalItems(groups)
	if displayCount < 0 {
		displayCount = 0
	}

	visible := make([]DayGroup[T], 0, len(groups))
	remaining := displayCount
	for _, g := range groups {
		if remaining <= 0 {
			break
		}
		take := len(g.Items)
		if take > remaining {
			take = remaining
		}
		visible = append(visible, DayGroup[T]{Key: g.Key, Items: g.Items[:take]})
		remaining -= take
	}

	return PageResult[T]{
		Visible:    visible,
		HasMore:    displayCount < total,
		TotalItems: total,
	}
}
