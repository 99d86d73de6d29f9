package page

const (
	DefaultPerPage = 6
	MaxPerPage     = 100
	maxVisible     = 5
)

// Page is one slice of a result list plus what a pager control needs.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
	// ShowFirst and ShowLast are set when page 1 or the last page sit outside
	// the window; the Gap flags when an ellipsis belongs between them.
	ShowFirst bool `json:"showFirst"`
	FirstGap  bool `json:"firstGap"`
	ShowLast  bool `json:"showLast"`
	LastGap   bool `json:"lastGap"`
}

// Paginate returns page number of items, clamping number into range and
// perPage to at most MaxPerPage.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	total := len(items)
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if number < 1 {
		number = 1
	}
	if pages > 0 && number > pages {
		number = pages
	}

	p := Page[T]{
		Items:      []T{},
		Number:     number,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
		HasPrev:    number > 1,
		HasNext:    number < pages,
	}
	start := (number - 1) * perPage
	if start < total {
		end := start + perPage
		if end > total {
			end = total
		}
		p.Items = items[start:end]
	}
	if pages <= 1 {
		return p
	}

	first := number - maxVisible/2
	if first < 1 {
		first = 1
	}
	last := first + maxVisible - 1
	if last > pages {
		last = pages
	}
	if last-first+1 < maxVisible {
		first = last - maxVisible + 1
		if first < 1 {
			first = 1
		}
	}
	for i := first; i <= last; i++ {
		p.Window = append(p.Window, i)
	}
	p.ShowFirst = first > 1
	p.FirstGap = first > 2
	p.ShowLast = last < pages
	p.LastGap = last < pages-1
	return p
}
