package shoppinglist

import (
	"strings"
	"testing"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		expected []Line
	}{
		{
			name:     "empty cart",
			lines:    nil,
			expected: []Line{},
		},
		{
			name: "sums duplicate name and unit pairs",
			lines: []Line{
				{Name: "Flour", Unit: "g", Amount: 200},
				{Name: "Flour", Unit: "g", Amount: 300},
			},
			expected: []Line{
				{Name: "Flour", Unit: "g", Amount: 500},
			},
		},
		{
			name: "same name with different units stays separate",
			lines: []Line{
				{Name: "Milk", Unit: "ml", Amount: 250},
				{Name: "Milk", Unit: "l", Amount: 1},
			},
			expected: []Line{
				{Name: "Milk", Unit: "l", Amount: 1},
				{Name: "Milk", Unit: "ml", Amount: 250},
			},
		},
		{
			name: "orders by name regardless of input order",
			lines: []Line{
				{Name: "Sugar", Unit: "g", Amount: 50},
				{Name: "Butter", Unit: "g", Amount: 100},
				{Name: "Eggs", Unit: "pcs", Amount: 3},
			},
			expected: []Line{
				{Name: "Butter", Unit: "g", Amount: 100},
				{Name: "Eggs", Unit: "pcs", Amount: 3},
				{Name: "Sugar", Unit: "g", Amount: 50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.lines)
			if len(got) != len(tt.expected) {
				t.Fatalf("Aggregate() returned %d lines, expected %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d: got %+v, expected %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := Aggregate([]Line{
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Sugar", Unit: "g", Amount: 50},
		{Name: "Flour", Unit: "g", Amount: 300},
	})
	b := Aggregate([]Line{
		{Name: "Flour", Unit: "g", Amount: 300},
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Sugar", Unit: "g", Amount: 50},
	})

	if len(a) != len(b) {
		t.Fatalf("aggregates differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("line %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRender(t *testing.T) {
	got := string(Render([]Line{
		{Name: "Flour", Unit: "g", Amount: 500},
		{Name: "Milk", Unit: "ml", Amount: 250},
	}))

	if !strings.HasPrefix(got, header) {
		t.Errorf("rendered list missing header, got %q", got)
	}
	if !strings.Contains(got, "1. Flour - 500 g") {
		t.Errorf("missing first line in %q", got)
	}
	if !strings.Contains(got, "2. Milk - 250 ml") {
		t.Errorf("missing second line in %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	got := string(Render(nil))
	if !strings.HasPrefix(got, header) {
		t.Errorf("empty list should still carry the header, got %q", got)
	}
	if strings.Contains(got, "1.") {
		t.Errorf("empty list should have no numbered lines, got %q", got)
	}
}
