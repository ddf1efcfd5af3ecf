package services

import "gorm.io/gorm"

// Filter is one optional predicate. Absent filters impose no constraint.
type Filter struct {
	Present bool
	Clause  string
	Args    []any
}

// When builds a Filter that applies only if present is true.
func When(present bool, clause string, args ...any) Filter {
	return Filter{Present: present, Clause: clause, Args: args}
}

// Apply ANDs every present filter onto q.
func Apply(q *gorm.DB, filters ...Filter) *gorm.DB {
	for _, f := range filters {
		if f.Present {
			q = q.Where(f.Clause, f.Args...)
		}
	}
	return q
}

// rangeFilters turns a DateRange into filters on column. Open bounds drop out.
func rangeFilters(column string, r DateRange) []Filter {
	both := r.From != "" && r.To != ""
	return []Filter{
		When(both, column+" BETWEEN ? AND ?", r.From, r.To),
		When(!both && r.From != "", column+" >= ?", r.From),
		When(!both && r.To != "", column+" <= ?", r.To),
	}
}
