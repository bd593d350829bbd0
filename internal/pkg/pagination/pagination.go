package pagination

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Links points to the neighbouring pages; a nil side means there is none.
type Links struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Normalize clamps page to >= 1 and limit to [1, MaxLimit], using
// DefaultLimit for non-positive values.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}

func Build(page, limit int, total int64) Links {
	var l Links
	start := Offset(page, limit)
	if int64(page*limit) < total {
		l.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if start > 0 {
		l.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return l
}
