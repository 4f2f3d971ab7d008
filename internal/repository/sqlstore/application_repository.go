package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

const (
	createApplicationsTableSQLite = `
CREATE TABLE IF NOT EXISTS applications (
	username TEXT NOT NULL REFERENCES users (username) ON DELETE CASCADE,
	job_id INTEGER NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
	status TEXT NOT NULL DEFAULT 'applied'
		CHECK (status IN ('interested', 'applied', 'accepted', 'rejected')),
	PRIMARY KEY (username, job_id)
);
`
	createApplicationsTablePostgres = `
CREATE TABLE IF NOT EXISTS applications (
	username VARCHAR(25) NOT NULL REFERENCES users (username) ON DELETE CASCADE,
	job_id INTEGER NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
	status TEXT NOT NULL DEFAULT 'applied'
		CHECK (status IN ('interested', 'applied', 'accepted', 'rejected')),
	PRIMARY KEY (username, job_id)
);
`
)

type ApplicationRepository struct {
	db *DB
}

func NewApplicationRepository(db *DB) repository.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.db.ddl(createApplicationsTableSQLite, createApplicationsTablePostgres)); err != nil {
		return fmt.Errorf("create applications table: %w", err)
	}
	return nil
}

// Create inserts the application in one statement. The lookups in missing
// only run after the store rejected the row.
func (r *ApplicationRepository) Create(ctx context.Context, username string, jobID int64, status domain.ApplicationStatus) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO applications (username, job_id, status)
VALUES ($1, $2, $3)`,
		username,
		jobID,
		string(status),
	)
	if err == nil {
		return nil
	}

	switch classify(err) {
	case uniqueViolation:
		return domain.BadRequest("User %s already applied to job %d", username, jobID)
	case foreignKeyViolation:
		if err := r.missing(ctx, username, jobID); err != nil {
			return err
		}
	case checkViolation:
		return domain.BadRequest("Invalid status: %s", status)
	}
	return fmt.Errorf("insert application: %w", err)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, username string, jobID int64, status domain.ApplicationStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE applications
SET status = $1
WHERE username = $2 AND job_id = $3`,
		string(status),
		username,
		jobID,
	)
	if err != nil {
		if classify(err) == checkViolation {
			return domain.BadRequest("Invalid status: %s", status)
		}
		return fmt.Errorf("update application: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("application update rows affected: %w", err)
	}
	if aff > 0 {
		return nil
	}

	if err := r.missing(ctx, username, jobID); err != nil {
		return err
	}
	return domain.NotFound("No application: %s, %d", username, jobID)
}

// missing reports NotFound for the referenced job or user, job first, and
// nil when both exist.
func (r *ApplicationRepository) missing(ctx context.Context, username string, jobID int64) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM jobs WHERE id = $1`, jobID).Scan(&one)
	switch {
	case notFound(err):
		return domain.NotFound("No job: %d", jobID)
	case err != nil:
		return fmt.Errorf("lookup job: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&one)
	switch {
	case notFound(err):
		return domain.NotFound("No user: %s", username)
	case err != nil:
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) JobIDsForUser(ctx context.Context, username string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT job_id
FROM applications
WHERE username = $1
ORDER BY job_id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query application job ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan application job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ApplicationRepository) JobIDsByUser(ctx context.Context) (map[string][]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT username, job_id
FROM applications
ORDER BY username, job_id`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	byUser := make(map[string][]int64)
	for rows.Next() {
		var (
			username string
			id       int64
		)
		if err := rows.Scan(&username, &id); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		byUser[username] = append(byUser[username], id)
	}
	return byUser, rows.Err()
}

func (r *ApplicationRepository) ListForUser(ctx context.Context, username string) ([]domain.AppliedJob, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name, a.status
FROM applications AS a
JOIN jobs AS j ON j.id = a.job_id
JOIN companies AS c ON c.handle = j.company_handle
WHERE a.username = $1
ORDER BY j.id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query applied jobs: %w", err)
	}
	defer rows.Close()

	applied := []domain.AppliedJob{}
	for rows.Next() {
		var (
			job    domain.AppliedJob
			salary sql.NullInt64
			equity sql.NullFloat64
			status string
		)
		if err := rows.Scan(
			&job.JobID,
			&job.Title,
			&salary,
			&equity,
			&job.CompanyHandle,
			&job.CompanyName,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan applied job: %w", err)
		}
		job.Salary = intPtr(salary)
		job.Equity = floatPtr(equity)
		job.Status = domain.ApplicationStatus(status)
		applied = append(applied, job)
	}
	return applied, rows.Err()
}
