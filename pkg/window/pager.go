package window

import "tableflip.dev/shelflife/pkg/item"

// Pager walks a sequence page by page. Its cursor only moves when asked to,
// so paging never reorders items that were already shown.
type Pager struct {
	provider *Provider
	offset   int
	limit    int
}

// Pager returns a cursor starting at the first page.
func (p *Provider) Pager() *Pager {
	return &Pager{provider: p, limit: p.opts.PageSize}
}

// Offset returns the cursor position.
func (pg *Pager) Offset() int { return pg.offset }

// Current returns the view at the cursor. A stale cursor is pulled back onto
// the current items.
func (pg *Pager) Current(all []item.Item) View {
	v := pg.provider.Window(all, Range{Offset: pg.offset, Limit: pg.limit})
	if v.Virtualized {
		pg.offset = v.Start
	} else {
		pg.offset = 0
	}
	return v
}

// Next advances one page when there is more to show.
func (pg *Pager) Next(all []item.Item) View {
	if pg.provider.Active(len(all)) && pg.offset+pg.limit < len(all) {
		pg.offset += pg.limit
	}
	return pg.Current(all)
}

// Prev moves back one page, stopping at the start.
func (pg *Pager) Prev(all []item.Item) View {
	pg.offset -= pg.limit
	if pg.offset < 0 {
		pg.offset = 0
	}
	return pg.Current(all)
}

// Seek moves the cursor to the page containing index i.
func (pg *Pager) Seek(all []item.Item, i int) View {
	if i < 0 {
		i = 0
	}
	pg.offset = (i / pg.limit) * pg.limit
	return pg.Current(all)
}

// Reset moves the cursor back to the first page.
func (pg *Pager) Reset() {
	pg.offset = 0
}
