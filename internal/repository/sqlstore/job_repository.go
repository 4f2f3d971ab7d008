package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

const (
	createJobsTableSQLite = `
CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	salary INTEGER CHECK (salary >= 0),
	equity REAL CHECK (equity >= 0 AND equity <= 1.0),
	company_handle TEXT NOT NULL REFERENCES companies (handle) ON DELETE CASCADE
);
`
	createJobsTablePostgres = `
CREATE TABLE IF NOT EXISTS jobs (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	salary INTEGER CHECK (salary >= 0),
	equity NUMERIC CHECK (equity >= 0 AND equity <= 1.0),
	company_handle VARCHAR(25) NOT NULL REFERENCES companies (handle) ON DELETE CASCADE
);
`
	jobColumns = `id, title, salary, equity, company_handle`
)

var jobColumnNames = map[string]string{}

type JobRepository struct {
	db *DB
}

func NewJobRepository(db *DB) repository.JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.db.ddl(createJobsTableSQLite, createJobsTablePostgres)); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO jobs (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
RETURNING `+jobColumns,
		job.Title,
		intOrNil(job.Salary),
		floatOrNil(job.Equity),
		job.CompanyHandle,
	)

	created, err := scanJob(row)
	if err != nil {
		switch classify(err) {
		case foreignKeyViolation:
			return domain.BadRequest("No company: %s", job.CompanyHandle)
		case checkViolation:
			return domain.BadRequest("Invalid job data")
		}
		return fmt.Errorf("insert job: %w", err)
	}
	*job = *created
	return nil
}

func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	predicate, args, err := jobFilterClause(filter, r.db.likeOperator())
	if err != nil {
		return nil, err
	}

	query := withWhere(`
SELECT `+jobColumns+`
FROM jobs`, predicate) + "\nORDER BY title, id"

	return r.query(ctx, query, args...)
}

func (r *JobRepository) ListByCompany(ctx context.Context, handle string) ([]domain.Job, error) {
	return r.query(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE company_handle = $1
ORDER BY id`,
		handle,
	)
}

func (r *JobRepository) query(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}

	return jobs, rows.Err()
}

func (r *JobRepository) Get(ctx context.Context, id int64) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE id = $1`,
		id,
	)

	job, err := scanJob(row)
	if notFound(err) {
		return nil, domain.NotFound("No job: %d", id)
	}
	return job, err
}

func (r *JobRepository) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	setCols, values, err := PartialUpdate(jobPatchFields(patch), jobColumnNames)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
UPDATE jobs
SET %s
WHERE id = $%d
RETURNING %s`, setCols, len(values)+1, jobColumns)

	job, err := scanJob(r.db.QueryRowContext(ctx, query, append(values, id)...))
	switch {
	case notFound(err):
		return nil, domain.NotFound("No job: %d", id)
	case classify(err) == checkViolation:
		return nil, domain.BadRequest("Invalid job data")
	}
	return job, err
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("job delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.NotFound("No job: %d", id)
	}
	return nil
}

func jobPatchFields(patch domain.JobPatch) []Field {
	var fields []Field
	if patch.Title != nil {
		fields = append(fields, Field{Name: "title", Value: *patch.Title})
	}
	if patch.Salary.Set {
		fields = append(fields, Field{Name: "salary", Value: patch.Salary.SQLValue()})
	}
	if patch.Equity.Set {
		fields = append(fields, Field{Name: "equity", Value: patch.Equity.SQLValue()})
	}
	return fields
}

func scanJob(scanner interface {
	Scan(dest ...any) error
}) (*domain.Job, error) {
	var (
		job    domain.Job
		salary sql.NullInt64
		equity sql.NullFloat64
	)
	if err := scanner.Scan(
		&job.ID,
		&job.Title,
		&salary,
		&equity,
		&job.CompanyHandle,
	); err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}

	job.Salary = intPtr(salary)
	job.Equity = floatPtr(equity)
	return &job, nil
}
