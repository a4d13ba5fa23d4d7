package omada

import (
	"context"
	"fmt"
	"net/url"
)

// Severity levels accepted by the alert and event filters.
const (
	LevelError       = "Error"
	LevelWarning     = "Warning"
	LevelInformation = "Information"
)

// Modules accepted by the alert and event filters.
const (
	ModuleDevice    = "Device"
	ModuleOperation = "Operation"
	ModuleSystem    = "System"
)

var (
	levelValues  = []string{LevelError, LevelWarning, LevelInformation}
	moduleValues = []string{ModuleDevice, ModuleOperation, ModuleSystem}
)

// Alert is one alert raised by the controller.
type Alert struct {
	ID       string `json:"id"`
	Module   string `json:"module"`
	Level    string `json:"level"`
	Content  string `json:"content"`
	Time     int64  `json:"time"`
	Archived bool   `json:"archived"`
}

// AlertFilter narrows an alert listing. Zero values apply no filter; Level
// and Module must be one of the Level*/Module* constants when set.
type AlertFilter struct {
	Archived bool
	Level    string
	Module   string
	Search   string
}

func (f AlertFilter) values() (url.Values, error) {
	q := url.Values{}
	if f.Archived {
		q.Set("filters.archived", "true")
	} else {
		q.Set("filters.archived", "false")
	}
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

func addLevelFilter(q url.Values, level string) error {
	if level == "" {
		return nil
	}
	for _, v := range levelValues {
		if level == v {
			q.Set("filters.level", level)
			return nil
		}
	}
	return fmt.Errorf("omada: invalid level %q, must be one of %v", level, levelValues)
}

func addModuleFilter(q url.Values, module string) error {
	if module == "" {
		return nil
	}
	for _, v := range moduleValues {
		if module == v {
			q.Set("filters.module", module)
			return nil
		}
	}
	return fmt.Errorf("omada: invalid module %q, must be one of %v", module, moduleValues)
}

func (c *client) ListAlerts(ctx context.Context, filter AlertFilter) ([]Alert, error) {
	pager, err := c.PageAlerts(0, 0, filter)
	if err != nil {
		return nil, err
	}
	return pager.All(ctx)
}

func (c *client) PageAlerts(page, pageSize int, filter AlertFilter) (*Pager[Alert], error) {
	query, err := filter.values()
	if err != nil {
		return nil, err
	}
	return newPager(page, c.resolvePageSize(pageSize), func(ctx context.Context, pg, size int) (*pageResult[Alert], error) {
		return getPage[Alert](ctx, c, c.sitePath("alerts"), pg, size, query)
	}), nil
}
