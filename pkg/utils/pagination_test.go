package utils

import "testing"

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	if p.Page != 1 || p.Limit != 0 {
		t.Fatalf("expected defaults page=1 limit=0, got %+v", p)
	}

	p = GetPaginationParams(3, 20)
	if p.Page != 3 || p.Limit != 20 {
		t.Fatalf("expected passthrough, got %+v", p)
	}
}

func TestCalculateOffset(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{5, 10, 40},
		{0, 20, 0},
	}
	for _, c := range cases {
		p := PaginationParams{Page: c.page, Limit: c.limit}
		if got := p.CalculateOffset(); got != c.want {
			t.Fatalf("page=%d limit=%d: expected offset %d, got %d", c.page, c.limit, c.want, got)
		}
	}
}

func TestCalculateMeta(t *testing.T) {
	m := CalculateMeta(45, 2, 20)
	if m.TotalPages != 3 || m.Page != 2 || m.TotalCount != 45 {
		t.Fatalf("unexpected meta %+v", m)
	}

	// limit=0 means everything on one page
	m = CalculateMeta(45, 1, 0)
	if m.TotalPages != 1 || m.Limit != 45 {
		t.Fatalf("unexpected unlimited meta %+v", m)
	}

	m = CalculateMeta(0, 1, 20)
	if m.TotalPages != 0 {
		t.Fatalf("expected zero pages for empty set, got %+v", m)
	}
}
