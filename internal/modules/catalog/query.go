package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"coworkspace/internal/pkg/pagination"
	"coworkspace/internal/repository"
)

// filterable maps query keys to columns with their value parser.
var filterable = map[string]func(string) (any, error){
	"id":         parseInt,
	"name":       parseString,
	"address":    parseString,
	"telephone":  parseString,
	"price":      parseInt,
	"created_at": parseTime,
	"updated_at": parseTime,
}

// selectable additionally allows the schedule column in projections.
var selectable = map[string]bool{
	"id": true, "name": true, "address": true, "telephone": true,
	"schedule": true, "price": true, "created_at": true, "updated_at": true,
}

var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// filterKey matches price, price[gte] and similar.
var filterKey = regexp.MustCompile(`^([a-z_]+)(?:\[(gt|gte|lt|lte|in)\])?$`)

type ListParams struct {
	Query repository.SpaceQuery
	Page  int
	Limit int
}

// ParseListParams turns a query string such as
// price[gte]=100&name[in]=a,b&select=name,price&sort=-price&page=2 into a
// repository query. Unknown columns are rejected.
func ParseListParams(values url.Values) (ListParams, error) {
	var p ListParams

	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))
	p.Page, p.Limit = pagination.Normalize(page, limit)
	p.Query.Limit = p.Limit
	p.Query.Offset = pagination.Offset(p.Page, p.Limit)

	for key, raw := range values {
		if reserved[key] || len(raw) == 0 {
			continue
		}
		m := filterKey.FindStringSubmatch(key)
		if m == nil {
			return p, fmt.Errorf("unsupported filter %q", key)
		}
		parse, ok := filterable[m[1]]
		if !ok {
			return p, fmt.Errorf("unsupported filter %q", key)
		}
		op := repository.FilterOp(m[2])
		if op == "" {
			op = repository.OpEq
		}

		parts := []string{raw[0]}
		if op == repository.OpIn {
			parts = strings.Split(raw[0], ",")
		}
		f := repository.Filter{Column: m[1], Op: op}
		for _, part := range parts {
			v, err := parse(strings.TrimSpace(part))
			if err != nil {
				return p, fmt.Errorf("filter %q: %w", key, err)
			}
			f.Values = append(f.Values, v)
		}
		p.Query.Filters = append(p.Query.Filters, f)
	}

	if sel := values.Get("select"); sel != "" {
		for _, col := range strings.Split(sel, ",") {
			col = strings.TrimSpace(col)
			if !selectable[col] {
				return p, fmt.Errorf("unknown select field %q", col)
			}
			p.Query.Select = append(p.Query.Select, col)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, col := range strings.Split(sort, ",") {
			col = strings.TrimSpace(col)
			desc := strings.HasPrefix(col, "-")
			col = strings.TrimPrefix(col, "-")
			if _, ok := filterable[col]; !ok {
				return p, fmt.Errorf("unknown sort field %q", col)
			}
			p.Query.Sort = append(p.Query.Sort, repository.SortField{Column: col, Desc: desc})
		}
	}
	return p, nil
}

func parseInt(s string) (any, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseString(s string) (any, error) {
	return s, nil
}

func parseTime(s string) (any, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return t.UTC(), nil
}
