package omada

import "context"

// Pager walks a paged controller listing one page at a time. It is produced
// by the Page* accessors and is not safe for concurrent use.
type Pager[T any] struct {
	page     int
	pageSize int
	fetch    func(ctx context.Context, page, pageSize int) (*pageResult[T], error)

	hasNext   bool
	totalRows int
}

func newPager[T any](page, pageSize int, fetch func(ctx context.Context, page, pageSize int) (*pageResult[T], error)) *Pager[T] {
	if page <= 0 {
		page = 1
	}
	return &Pager[T]{
		page:     page,
		pageSize: pageSize,
		fetch:    fetch,
		hasNext:  true,
	}
}

// HasNext reports whether another page remains. It is true before the first
// fetch, even for an empty listing.
func (p *Pager[T]) HasNext() bool { return p.hasNext }

// TotalRows returns the row count reported by the most recent page. It is
// zero before the first successful Next.
func (p *Pager[T]) TotalRows() int { return p.totalRows }

// Next fetches the next page. It returns ErrNoMorePages once the listing is
// exhausted.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if !p.hasNext {
		return nil, ErrNoMorePages
	}
	result, err := p.fetch(ctx, p.page, p.pageSize)
	if err != nil {
		return nil, err
	}
	p.page = result.CurrentPage + 1
	p.totalRows = result.TotalRows
	p.hasNext = result.TotalRows > result.CurrentPage*result.CurrentSize
	return result.Data, nil
}

// All drains the remaining pages into one slice.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var all []T
	for p.hasNext {
		batch, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}
