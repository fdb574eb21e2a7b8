package jsonapi

import (
	"fmt"
	"strconv"
)

// DefaultPageSize is used when the request does not pin a page size
const DefaultPageSize = 20

// Params is a sanitized page request. Construct via NewParams so the
// fallback rules apply.
type Params struct {
	Number int
	Size   int
}

// NewParams coerces raw page[number] / page[size] query values. Absent,
// non-numeric, or non-positive values fall back to page 1 and defaultSize
// rather than erroring.
func NewParams(number, size string, defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	return Params{
		Number: coerce(number, 1),
		Size:   coerce(size, defaultSize),
	}
}

func coerce(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Offset is the index of the first visible item
func (p Params) Offset() int {
	return (p.Number - 1) * p.Size
}

// Links is the fixed five-entry navigation set. Every paginated response
// carries all five regardless of position; prev and next clamp to the first
// and last page instead of disappearing.
type Links struct {
	Self  string `json:"self"`
	First string `json:"first"`
	Prev  string `json:"prev"`
	Next  string `json:"next"`
	Last  string `json:"last"`
}

// Page is one visible slice of an ordered collection plus its links
type Page[T any] struct {
	Items    []T
	Number   int
	Size     int
	Total    int
	LastPage int
	Links    Links
}

// NewPage builds the link set for a page whose items were already selected
// (typically by a limit/offset query). total is the collection size across
// all pages; path is the collection URL the links reproduce.
func NewPage[T any](items []T, total int, p Params, path string) Page[T] {
	last := lastPage(total, p.Size)

	return Page[T]{
		Items:    items,
		Number:   p.Number,
		Size:     p.Size,
		Total:    total,
		LastPage: last,
		Links: Links{
			Self:  pageLink(path, p.Number, p.Size),
			First: pageLink(path, 1, p.Size),
			Prev:  pageLink(path, clamp(p.Number-1, 1, last), p.Size),
			Next:  pageLink(path, clamp(p.Number+1, 1, last), p.Size),
			Last:  pageLink(path, last, p.Size),
		},
	}
}

// Paginate slices an ordered in-memory collection. The collection must be
// pre-sorted by the caller; the paginator never reorders it.
func Paginate[T any](collection []T, p Params, path string) Page[T] {
	total := len(collection)

	start := p.Offset()
	if start > total {
		start = total
	}

	end := start + p.Size
	if end > total {
		end = total
	}

	return NewPage(collection[start:end], total, p, path)
}

func lastPage(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	last := (total + size - 1) / size
	if last < 1 {
		return 1
	}
	return last
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func pageLink(path string, number, size int) string {
	return fmt.Sprintf("%s?page[number]=%d&page[size]=%d", path, number, size)
}
