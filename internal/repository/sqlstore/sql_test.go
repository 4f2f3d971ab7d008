package sqlstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestPartialUpdate(t *testing.T) {
	clause, values, err := PartialUpdate(
		[]Field{{Name: "firstName", Value: "test"}, {Name: "age", Value: 3}},
		map[string]string{"firstName": "first_name"},
	)
	require.NoError(t, err)
	assert.Equal(t, `"first_name"=$1, "age"=$2`, clause)
	assert.Equal(t, []any{"test", 3}, values)
}

func TestPartialUpdateKeepsInputOrder(t *testing.T) {
	clause, values, err := PartialUpdate(
		[]Field{{Name: "logoUrl", Value: nil}, {Name: "name", Value: "Acme"}},
		companyColumnNames,
	)
	require.NoError(t, err)
	assert.Equal(t, `"logo_url"=$1, "name"=$2`, clause)
	assert.Equal(t, []any{nil, "Acme"}, values)
}

func TestPartialUpdateRequiresData(t *testing.T) {
	_, _, err := PartialUpdate(nil, nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.EqualError(t, err, "No data")
}

func TestCompanyFilterClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.CompanyFilter
		predicate string
		args      []any
	}{
		{
			name: "empty",
		},
		{
			name:      "all keys in declared order",
			filter:    domain.CompanyFilter{Name: ptr("net"), MaxEmployees: ptr(300), MinEmployees: ptr(10)},
			predicate: "num_employees >= $1 AND num_employees <= $2 AND name ILIKE $3",
			args:      []any{10, 300, "%net%"},
		},
		{
			name:      "name only",
			filter:    domain.CompanyFilter{Name: ptr("c")},
			predicate: "name ILIKE $1",
			args:      []any{"%c%"},
		},
		{
			name:      "equal bounds",
			filter:    domain.CompanyFilter{MinEmployees: ptr(5), MaxEmployees: ptr(5)},
			predicate: "num_employees >= $1 AND num_employees <= $2",
			args:      []any{5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate, args, err := companyFilterClause(tt.filter, "ILIKE")
			require.NoError(t, err)
			assert.Equal(t, tt.predicate, predicate)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestCompanyFilterClauseRejectsInvertedRange(t *testing.T) {
	_, _, err := companyFilterClause(domain.CompanyFilter{MinEmployees: ptr(10), MaxEmployees: ptr(1)}, "LIKE")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestJobFilterClause(t *testing.T) {
	predicate, args, err := jobFilterClause(domain.JobFilter{
		HasEquity: ptr(true),
		MinSalary: ptr(1000),
		Title:     ptr("eng"),
	}, "LIKE")
	require.NoError(t, err)
	assert.Equal(t, "title LIKE $1 AND salary >= $2 AND equity > 0", predicate)
	assert.Equal(t, []any{"%eng%", 1000}, args)

	predicate, args, err = jobFilterClause(domain.JobFilter{HasEquity: ptr(false)}, "LIKE")
	require.NoError(t, err)
	assert.Empty(t, predicate)
	assert.Empty(t, args)
}

func TestWithWhere(t *testing.T) {
	assert.Equal(t, "SELECT 1", withWhere("SELECT 1", ""))
	assert.Equal(t, "SELECT 1\nWHERE a >= $1", withWhere("SELECT 1", "a >= $1"))
}

func TestClassifyPostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want violation
	}{
		{name: "nil", err: nil, want: noViolation},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: uniqueViolation},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: foreignKeyViolation},
		{name: "check", err: &pgconn.PgError{Code: "23514"}, want: checkViolation},
		{name: "not null", err: &pgconn.PgError{Code: "23502"}, want: noViolation},
		{name: "plain", err: errors.New("boom"), want: noViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.want, classify(fmt.Errorf("insert company: %w", tt.err)))
			}
		})
	}
}
