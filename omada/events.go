package omada

import (
	"context"
	"net/url"
)

// Event is one entry of the controller's event log.
type Event struct {
	Module  string `json:"module"`
	Level   string `json:"level"`
	Content string `json:"content"`
	Time    int64  `json:"time"`
}

// EventFilter narrows an event listing. Zero values apply no filter; Level
// and Module must be one of the Level*/Module* constants when set.
type EventFilter struct {
	Level  string
	Module string
	Search string
}

func (f EventFilter) values() (url.Values, error) {
	q := url.Values{}
	if err := addLevelFilter(q, f.Level); err != nil {
		return nil, err
	}
	if err := addModuleFilter(q, f.Module); err != nil {
		return nil, err
	}
	if f.Search != "" {
		q.Set("searchKey", f.Search)
	}
	return q, nil
}

func (c *client) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	pager, err := c.PageEvents(0, 0, filter)
	if err != nil {
		return nil, err
	}
	return pager.All(ctx)
}

func (c *client) PageEvents(page, pageSize int, filter EventFilter) (*Pager[Event], error) {
	query, err := filter.values()
	if err != nil {
		return nil, err
	}
	return newPager(page, c.resolvePageSize(pageSize), func(ctx context.Context, pg, size int) (*pageResult[Event], error) {
		return getPage[Event](ctx, c, c.sitePath("events"), pg, size, query)
	}), nil
}
