package paging

import "testing"

func TestPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{30, 10, 3},
		{31, 10, 4},
		{10, 0, 1},
	}
	for _, tt := range tests {
		if got := Pages(tt.total, tt.size); got != tt.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name              string
		page, pages, want int
	}{
		{"below range", 0, 3, 1},
		{"negative", -4, 3, 1},
		{"in range", 2, 3, 2},
		{"past end", 9, 3, 3},
		{"single page", 5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.page, tt.pages); got != tt.want {
				t.Errorf("Clamp(%d, %d) = %d, want %d", tt.page, tt.pages, got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		wantLo, wantHi    int
	}{
		{"first page", 1, 5, 12, 0, 5},
		{"middle page", 2, 5, 12, 5, 10},
		{"last partial page", 3, 5, 12, 10, 12},
		{"past end", 4, 5, 12, 12, 12},
		{"empty", 1, 5, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Bounds(tt.page, tt.size, tt.total)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("Bounds(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.page, tt.size, tt.total, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		shown int
		size  int
		want  Range
	}{
		{"no results", 1, 0, 5, Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}},
		{"first page", 1, 5, 5, Range{Start: 1, End: 5, PrevStart: 1, NextStart: 6}},
		{"second page", 6, 5, 5, Range{Start: 6, End: 10, PrevStart: 1, NextStart: 11}},
		{"third page partial", 11, 2, 5, Range{Start: 11, End: 12, PrevStart: 6, NextStart: 13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRange(tt.start, tt.shown, tt.size); got != tt.want {
				t.Errorf("ComputeRange(%d, %d, %d) = %+v, want %+v", tt.start, tt.shown, tt.size, got, tt.want)
			}
		})
	}
}
