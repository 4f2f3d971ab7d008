package sqlstore

import (
	"fmt"
	"strings"

	"jobly/internal/domain"
)

// Field is one logical column assignment of a partial update.
type Field struct {
	Name  string
	Value any
}

// PartialUpdate translates fields into a SET clause and its parameters.
//
// Columns are quoted and named columns[name] when the logical name differs
// from the column, else the logical name itself. Placeholders start at $1 and
// follow the order of fields; the caller binds any key parameter after them
// as $len(values)+1. Only column names reach the clause text, and those come
// from fixed per-entity field lists.
//
//	PartialUpdate([]Field{{"firstName", "Aliya"}, {"age", 32}}, map[string]string{"firstName": "first_name"})
//	=> `"first_name"=$1, "age"=$2`, ["Aliya", 32]
func PartialUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, domain.BadRequest("No data")
	}

	cols := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, f := range fields {
		column := f.Name
		if mapped, ok := columns[f.Name]; ok {
			column = mapped
		}
		cols[i] = fmt.Sprintf(`"%s"=$%d`, column, i+1)
		values[i] = f.Value
	}

	return strings.Join(cols, ", "), values, nil
}

// Where accumulates AND-ed predicates with positional parameters.
type Where struct {
	likeOp string
	preds  []string
	args   []any
}

func NewWhere(likeOp string) *Where {
	return &Where{likeOp: likeOp}
}

func (w *Where) bind(column, op string, value any) {
	w.args = append(w.args, value)
	w.preds = append(w.preds, fmt.Sprintf("%s %s $%d", column, op, len(w.args)))
}

func (w *Where) AtLeast(column string, value any) {
	w.bind(column, ">=", value)
}

func (w *Where) AtMost(column string, value any) {
	w.bind(column, "<=", value)
}

// Contains matches value anywhere in column, ignoring case.
func (w *Where) Contains(column, value string) {
	w.bind(column, w.likeOp, "%"+value+"%")
}

func (w *Where) Positive(column string) {
	w.preds = append(w.preds, column+" > 0")
}

// Predicate returns the joined predicates, or "" when nothing was added.
func (w *Where) Predicate() string {
	return strings.Join(w.preds, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}

// companyFilterClause applies company filters in a fixed order:
// minEmployees, maxEmployees, name.
func companyFilterClause(f domain.CompanyFilter, likeOp string) (string, []any, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return "", nil, domain.BadRequest("minEmployees cannot be greater than maxEmployees")
	}

	w := NewWhere(likeOp)
	if f.MinEmployees != nil {
		w.AtLeast("num_employees", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		w.AtMost("num_employees", *f.MaxEmployees)
	}
	if f.Name != nil {
		w.Contains("name", *f.Name)
	}
	return w.Predicate(), w.Args(), nil
}

// jobFilterClause applies job filters in a fixed order: title, minSalary,
// hasEquity. hasEquity=false adds nothing and so lists every job.
func jobFilterClause(f domain.JobFilter, likeOp string) (string, []any, error) {
	w := NewWhere(likeOp)
	if f.Title != nil {
		w.Contains("title", *f.Title)
	}
	if f.MinSalary != nil {
		w.AtLeast("salary", *f.MinSalary)
	}
	if f.HasEquity != nil && *f.HasEquity {
		w.Positive("equity")
	}
	return w.Predicate(), w.Args(), nil
}

func withWhere(query, predicate string) string {
	if predicate == "" {
		return query
	}
	return query + "\nWHERE " + predicate
}
