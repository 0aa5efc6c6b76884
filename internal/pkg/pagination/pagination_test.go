package pagination

import "testing"

func TestNewMeta_MiddlePage(t *testing.T) {
	meta := NewMeta(2, 10, 25)

	if meta.Page != 2 || meta.Limit != 10 || meta.Total != 25 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if !meta.HasNextPage || !meta.HasPreviousPage {
		t.Fatalf("page 2 of 3 must have both neighbours: %+v", meta)
	}
}

func TestNewMeta_Edges(t *testing.T) {
	first := NewMeta(1, 10, 25)
	if first.HasPreviousPage {
		t.Fatalf("first page must not have a previous page")
	}
	if !first.HasNextPage {
		t.Fatalf("first page of 3 must have a next page")
	}

	last := NewMeta(3, 10, 25)
	if last.HasNextPage {
		t.Fatalf("last page must not have a next page")
	}

	empty := NewMeta(1, 10, 0)
	if empty.TotalPages != 0 || empty.HasNextPage {
		t.Fatalf("empty result meta wrong: %+v", empty)
	}
}

func TestNewPage_NeverNilData(t *testing.T) {
	p := NewPage[string](nil, 1, 10, 0)
	if p.Data == nil {
		t.Fatalf("data must be an empty slice, not nil")
	}
}
