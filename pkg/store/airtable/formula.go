package airtable

import (
	"fmt"
	"strings"
)

// formulaBuilder assembles an Airtable filterByFormula conjunction from
// present-only clauses. Absent filter parameters simply contribute no
// clause; they are never defaulted to wildcards.
type formulaBuilder struct {
	clauses []string
}

func (b *formulaBuilder) equals(field, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("{%s} = '%s'", field, escapeFormulaValue(value)))
}

func (b *formulaBuilder) atLeast(field, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("{%s} >= '%s'", field, escapeFormulaValue(value)))
}

func (b *formulaBuilder) atMost(field, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("{%s} <= '%s'", field, escapeFormulaValue(value)))
}

// build returns an empty string for zero clauses, the bare clause for one,
// and AND(...) for two or more.
func (b *formulaBuilder) build() string {
	switch len(b.clauses) {
	case 0:
		return ""
	case 1:
		return b.clauses[0]
	default:
		return "AND(" + strings.Join(b.clauses, ",") + ")"
	}
}

func escapeFormulaValue(v string) string {
	return strings.ReplaceAll(v, "'", "\\'")
}

// recordFilter carries the supported query parameters for tabular reads.
type recordFilter struct {
	StoreID   string
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	Date      string // exact match, used by the density grid
}

func (f recordFilter) formula() string {
	b := &formulaBuilder{}
	b.equals(fieldStoreID, f.StoreID)
	b.atLeast(fieldDate, f.StartDate)
	b.atMost(fieldDate, f.EndDate)
	b.equals(fieldDate, f.Date)
	return b.build()
}
