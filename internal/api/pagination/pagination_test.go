package pagination

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected Page
		err      error
	}{
		{
			name:     "defaults",
			query:    "",
			expected: Page{Number: 1, Limit: DefaultLimit},
		},
		{
			name:     "explicit page and limit",
			query:    "page=3&limit=10",
			expected: Page{Number: 3, Limit: 10},
		},
		{
			name:     "limit capped at maximum",
			query:    "limit=100000",
			expected: Page{Number: 1, Limit: MaxLimit},
		},
		{
			name:  "non-integer page",
			query: "page=abc",
			err:   ErrInvalidPage,
		},
		{
			name:  "zero page",
			query: "page=0",
			err:   ErrInvalidPage,
		},
		{
			name:  "negative limit",
			query: "limit=-5",
			err:   ErrInvalidLimit,
		},
		{
			name:  "zero limit",
			query: "limit=0",
			err:   ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, parseErr := url.ParseQuery(tt.query)
			if parseErr != nil {
				t.Fatalf("parsing query: %v", parseErr)
			}

			page, err := FromQuery(values)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("FromQuery() = %v, expected %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromQuery() returned unexpected error: %v", err)
			}
			if page != tt.expected {
				t.Errorf("FromQuery() = %+v, expected %+v", page, tt.expected)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		expected int
	}{
		{name: "first page", page: Page{Number: 1, Limit: 6}, expected: 0},
		{name: "second page", page: Page{Number: 2, Limit: 6}, expected: 6},
		{name: "deep page", page: Page{Number: 5, Limit: 10}, expected: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.expected {
				t.Errorf("Offset() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestNewEnvelope(t *testing.T) {
	const origin = "http://localhost:8080"

	tests := []struct {
		name         string
		target       string
		page         Page
		count        int64
		wantNext     string
		wantPrevious string
	}{
		{
			name:     "first page of many",
			target:   "/api/recipes/?page=1&limit=2",
			page:     Page{Number: 1, Limit: 2},
			count:    5,
			wantNext: "page=2",
		},
		{
			name:         "middle page",
			target:       "/api/recipes/?page=2&limit=2",
			page:         Page{Number: 2, Limit: 2},
			count:        5,
			wantNext:     "page=3",
			wantPrevious: "page=1",
		},
		{
			name:         "last page",
			target:       "/api/recipes/?page=3&limit=2",
			page:         Page{Number: 3, Limit: 2},
			count:        5,
			wantPrevious: "page=2",
		},
		{
			name:   "single page",
			target: "/api/recipes/",
			page:   Page{Number: 1, Limit: DefaultLimit},
			count:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			env := NewEnvelope(r, origin, tt.page, tt.count, []int{})

			if env.Count != tt.count {
				t.Errorf("Count = %d, expected %d", env.Count, tt.count)
			}

			if tt.wantNext == "" {
				if env.Next != nil {
					t.Errorf("expected no next link, got %q", *env.Next)
				}
			} else {
				if env.Next == nil {
					t.Fatalf("expected a next link containing %q", tt.wantNext)
				}
				if !strings.HasPrefix(*env.Next, origin) || !strings.Contains(*env.Next, tt.wantNext) {
					t.Errorf("next = %q, expected absolute link containing %q", *env.Next, tt.wantNext)
				}
			}

			if tt.wantPrevious == "" {
				if env.Previous != nil {
					t.Errorf("expected no previous link, got %q", *env.Previous)
				}
			} else {
				if env.Previous == nil {
					t.Fatalf("expected a previous link containing %q", tt.wantPrevious)
				}
				if !strings.Contains(*env.Previous, tt.wantPrevious) {
					t.Errorf("previous = %q, expected link containing %q", *env.Previous, tt.wantPrevious)
				}
			}
		})
	}
}

func TestNewEnvelopePreservesFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/recipes/?tags=breakfast&page=1&limit=1", nil)
	env := NewEnvelope(r, "http://localhost:8080", Page{Number: 1, Limit: 1}, 2, []int{})

	if env.Next == nil {
		t.Fatal("expected a next link")
	}
	if !strings.Contains(*env.Next, "tags=breakfast") {
		t.Errorf("next link dropped the filter: %q", *env.Next)
	}
}
