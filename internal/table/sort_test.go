package table

import (
	"reflect"
	"testing"

	"github.com/Daniel-Moraes1/offer-watch/internal/models"
)

func app(company, dueDate string) models.Application {
	return models.Application{
		Email:           "a@x.com",
		Company:         company,
		Role:            "Eng",
		Status:          models.StatusApplied,
		ApplicationDate: "2024-09-01",
		DueDate:         dueDate,
	}
}

func companies(apps []models.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.Company
	}
	return out
}

func TestSortAscending(t *testing.T) {
	in := []models.Application{app("globex", ""), app("Acme", ""), app("initech", "")}
	got := companies(Sort(in, ColumnCompany, Ascending))
	want := []string{"Acme", "globex", "initech"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort asc = %v, want %v", got, want)
	}
}

func TestSortDescending(t *testing.T) {
	in := []models.Application{app("Acme", ""), app("initech", ""), app("globex", "")}
	got := companies(Sort(in, ColumnCompany, Descending))
	want := []string{"initech", "globex", "Acme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort desc = %v, want %v", got, want)
	}
}

// Case folding: "acme" and "Initech" interleave with differently-cased peers.
func TestSortCaseInsensitive(t *testing.T) {
	in := []models.Application{app("beta", ""), app("ALPHA", ""), app("Gamma", "")}
	got := companies(Sort(in, ColumnCompany, Ascending))
	want := []string{"ALPHA", "beta", "Gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

// Records missing the sort column value go last in both directions.
func TestSortEmptyValuesAlwaysLast(t *testing.T) {
	in := []models.Application{
		app("Acme", ""),
		app("Globex", "2024-10-01"),
		app("Initech", "2024-09-01"),
	}

	for _, dir := range []Direction{Ascending, Descending} {
		got := Sort(in, ColumnDueDate, dir)
		if got[len(got)-1].Company != "Acme" {
			t.Errorf("dir %s: record with empty dueDate not last: %v", dir, companies(got))
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	in := []models.Application{app("globex", ""), app("Acme", ""), app("initech", "")}
	once := Sort(in, ColumnCompany, Ascending)
	twice := Sort(once, ColumnCompany, Ascending)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("sorting a sorted sequence changed it: %v -> %v", companies(once), companies(twice))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []models.Application{app("globex", ""), app("Acme", "")}
	orig := make([]models.Application, len(in))
	copy(orig, in)

	Sort(in, ColumnCompany, Ascending)
	if !reflect.DeepEqual(in, orig) {
		t.Errorf("Sort mutated its input: %v", companies(in))
	}
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	in := []models.Application{app("globex", ""), app("Acme", "")}
	got := companies(Sort(in, "nonsense", Ascending))
	want := []string{"globex", "Acme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort unknown column = %v, want input order %v", got, want)
	}
}

func TestToggle(t *testing.T) {
	s := State{Column: ColumnRole, Direction: Ascending}

	s.Toggle(ColumnRole)
	if s.Direction != Descending {
		t.Errorf("toggling same column: direction = %s, want desc", s.Direction)
	}

	s.Toggle(ColumnRole)
	if s.Direction != Ascending {
		t.Errorf("toggling same column again: direction = %s, want asc", s.Direction)
	}

	s.Toggle(ColumnCompany)
	if s.Column != ColumnCompany || s.Direction != Ascending {
		t.Errorf("toggling new column = %+v, want company/asc", s)
	}
}
