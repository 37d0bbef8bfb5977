// Package pagination implements page/limit list pagination with a
// count/next/previous/results envelope.
package pagination

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 6
	MaxLimit     = 100
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

type Page struct {
	Number int
	Limit  int
}

// FromQuery parses the page and limit parameters. Absent values fall
// back to page 1 and DefaultLimit; malformed values are an error, not a
// silent fallback.
func FromQuery(query url.Values) (Page, error) {
	page := Page{Number: 1, Limit: DefaultLimit}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, ErrInvalidPage
		}
		page.Number = n
	}

	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, ErrInvalidLimit
		}
		page.Limit = min(n, MaxLimit)
	}

	return page, nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

type Envelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewEnvelope wraps results with absolute next/previous page links
// derived from the request URL.
func NewEnvelope(r *http.Request, hostOrigin string, page Page, count int64, results any) Envelope {
	env := Envelope{
		Count:   count,
		Results: results,
	}

	if int64(page.Offset()+page.Limit) < count {
		env.Next = pageLink(r, hostOrigin, page.Number+1)
	}
	if page.Number > 1 {
		env.Previous = pageLink(r, hostOrigin, page.Number-1)
	}
	return env
}

func pageLink(r *http.Request, hostOrigin string, number int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()

	link := hostOrigin + u.Path
	if u.RawQuery != "" {
		link += "?" + u.RawQuery
	}
	return &link
}
