// Package table orders application records for tabular display.
package table

import (
	"sort"
	"strings"

	"github.com/Daniel-Moraes1/offer-watch/internal/models"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Columns a table can be sorted by.
const (
	ColumnCompany         = "company"
	ColumnRole            = "role"
	ColumnStatus          = "status"
	ColumnApplicationDate = "applicationDate"
	ColumnDueDate         = "dueDate"
	ColumnLastActionDate  = "lastActionDate"
)

var columns = map[string]func(*models.Application) string{
	ColumnCompany:         func(a *models.Application) string { return a.Company },
	ColumnRole:            func(a *models.Application) string { return a.Role },
	ColumnStatus:          func(a *models.Application) string { return a.Status },
	ColumnApplicationDate: func(a *models.Application) string { return a.ApplicationDate },
	ColumnDueDate:         func(a *models.Application) string { return a.DueDate },
	ColumnLastActionDate:  func(a *models.Application) string { return a.LastActionDate },
}

// ValidColumn reports whether column is sortable.
func ValidColumn(column string) bool {
	_, ok := columns[column]
	return ok
}

// Sort returns a new slice of apps ordered by column. Records with an empty
// value on the sort column go last regardless of direction; present values
// compare case-insensitively. Equal keys keep their input order.
func Sort(apps []models.Application, column string, dir Direction) []models.Application {
	out := make([]models.Application, len(apps))
	copy(out, apps)

	value, ok := columns[column]
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := value(&out[i]), value(&out[j])
		// Empty sorts after everything, even when descending.
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		a, b = strings.ToLower(a), strings.ToLower(b)
		if dir == Descending {
			return a > b
		}
		return a < b
	})

	return out
}

// State tracks the active sort column and direction for a table view.
type State struct {
	Column    string
	Direction Direction
}

// Toggle applies a header click: the same column flips direction, a new
// column becomes the sort column ascending.
func (s *State) Toggle(column string) {
	if s.Column == column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return
	}
	s.Column = column
	s.Direction = Ascending
}
