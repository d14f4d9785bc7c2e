package services

// PageSize is the fixed page size for catalog listings.
const PageSize = 12

type Page struct {
	Number   int
	NumPages int
	Start    int // inclusive offset into the full result set
	End      int // exclusive
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.NumPages }
func (p Page) PrevPage() int { return p.Number - 1 }
func (p Page) NextPage() int { return p.Number + 1 }

// Paginate slices n items into pages of PageSize. A page below 1 becomes 1,
// a page past the end clamps to the last page. An empty set still yields a
// single empty page so listings always render.
func Paginate(n, page int) Page {
	numPages := (n + PageSize - 1) / PageSize
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	return Page{Number: page, NumPages: numPages, Start: start, End: end}
}
