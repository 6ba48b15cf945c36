package view

import (
	"fmt"
	"reflect"
	"testing"
)

type row struct {
	ID     string
	Name   string
	Status string
}

func rowFields(r row) []string { return []string{r.ID, r.Name} }
func rowStatus(r row) string   { return r.Status }

func makeRows(n int) (out []row) {
	for i := 0; i < n; i++ {
		out = append(out, row{ID: fmt.Sprintf("r-%d", i), Name: fmt.Sprintf("item %d", i), Status: "pending"})
	}
	return out
}

func TestProjectStatusFilter(t *testing.T) {
	items := []row{
		{ID: "1", Status: "pending"},
		{ID: "2", Status: "completed"},
	}
	st := NewState(10)
	st.SetFilter("pending")

	page := Project(items, st, rowFields, rowStatus)
	if len(page.Visible) != 1 || page.Visible[0].ID != "1" {
		t.Fatalf("Visible = %#v, want the pending row only", page.Visible)
	}
	if page.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1", page.TotalPages)
	}
}

func TestProjectPageWindow(t *testing.T) {
	items := makeRows(12)
	st := NewState(5)
	st.PageIndex = 2

	page := Project(items, st, rowFields, rowStatus)
	if len(page.Visible) != 2 {
		t.Fatalf("len(Visible) = %d, want 2", len(page.Visible))
	}
	if page.Visible[0].ID != "r-10" || page.Visible[1].ID != "r-11" {
		t.Fatalf("Visible = %#v, want items 10 and 11", page.Visible)
	}
	if page.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestProjectClampsShrunkenPage(t *testing.T) {
	items := makeRows(12)
	st := NewState(5)
	st.PageIndex = 2

	// Narrow the result set below the current window; the index must clamp
	// instead of showing an empty page.
	st.Search = "item 1" // matches item 1, 10, 11
	page := Project(items, st, rowFields, rowStatus)
	if page.PageIndex != 0 {
		t.Fatalf("PageIndex = %d, want clamped to 0", page.PageIndex)
	}
	if page.TotalPages != 1 || page.TotalItems != 3 {
		t.Fatalf("TotalPages/TotalItems = %d/%d, want 1/3", page.TotalPages, page.TotalItems)
	}
	if len(page.Visible) != 3 {
		t.Fatalf("len(Visible) = %d, want 3", len(page.Visible))
	}
}

func TestProjectEmptyResult(t *testing.T) {
	st := NewState(5)
	st.SetSearch("nothing matches")
	page := Project(makeRows(3), st, rowFields, rowStatus)
	if page.TotalPages != 0 || len(page.Visible) != 0 || page.PageIndex != 0 {
		t.Fatalf("empty projection = %#v, want zero pages", page)
	}
}

func TestFilterIsPure(t *testing.T) {
	items := makeRows(20)
	items[7].Status = "completed"

	first := Filter(items, "ITEM 1", "pending", rowFields, rowStatus)
	second := Filter(items, "ITEM 1", "pending", rowFields, rowStatus)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different output:\n%v\n%v", first, second)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	items := []row{{ID: "A-1", Name: "Aurora Lamp", Status: "pending"}}
	got := Filter(items, "aurora", "all", rowFields, rowStatus)
	if len(got) != 1 {
		t.Fatalf("Filter dropped a case-insensitive match")
	}
	got = Filter(items, "a-1", "all", rowFields, rowStatus)
	if len(got) != 1 {
		t.Fatalf("Filter should match against the id field")
	}
}

func TestVisibleNeverExceedsPageSize(t *testing.T) {
	items := makeRows(23)
	for index := 0; index < 8; index++ {
		st := NewState(5)
		st.PageIndex = index
		page := Project(items, st, rowFields, rowStatus)
		if len(page.Visible) > st.PageSize {
			t.Fatalf("page %d: len(Visible) = %d exceeds page size %d", index, len(page.Visible), st.PageSize)
		}
		if page.TotalPages > 0 && page.PageIndex >= page.TotalPages {
			t.Fatalf("page %d: index %d not below total %d", index, page.PageIndex, page.TotalPages)
		}
	}
}

func TestStateResetsPageIndex(t *testing.T) {
	st := NewState(5)
	st.PageIndex = 4

	st.SetSearch("x")
	if st.PageIndex != 0 {
		t.Fatalf("SetSearch left PageIndex = %d", st.PageIndex)
	}

	st.PageIndex = 4
	st.SetFilter("completed")
	if st.PageIndex != 0 {
		t.Fatalf("SetFilter left PageIndex = %d", st.PageIndex)
	}

	st.PageIndex = 4
	st.SetPageSize(20)
	if st.PageIndex != 0 {
		t.Fatalf("SetPageSize left PageIndex = %d", st.PageIndex)
	}
}

func TestCountByStatus(t *testing.T) {
	items := makeRows(5)
	items[0].Status = "completed"
	items[1].Status = "completed"
	counts := CountByStatus(items, rowStatus)
	if counts["completed"] != 2 || counts["pending"] != 3 {
		t.Fatalf("CountByStatus = %v", counts)
	}
}

func TestNilStatusAccessorMatchesAll(t *testing.T) {
	items := makeRows(3)
	got := Filter(items, "", "pending", rowFields, nil)
	if len(got) != 3 {
		t.Fatalf("nil statusOf should bypass the status filter, got %d items", len(got))
	}
}
