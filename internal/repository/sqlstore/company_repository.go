package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

const (
	createCompaniesTableSQLite = `
CREATE TABLE IF NOT EXISTS companies (
	handle TEXT PRIMARY KEY CHECK (handle = lower(handle)),
	name TEXT NOT NULL UNIQUE,
	num_employees INTEGER CHECK (num_employees >= 0),
	description TEXT NOT NULL,
	logo_url TEXT
);
`
	createCompaniesTablePostgres = `
CREATE TABLE IF NOT EXISTS companies (
	handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
	name TEXT UNIQUE NOT NULL,
	num_employees INTEGER CHECK (num_employees >= 0),
	description TEXT NOT NULL,
	logo_url TEXT
);
`
	companyColumns = `handle, name, description, num_employees, logo_url`
)

var companyColumnNames = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

type CompanyRepository struct {
	db *DB
}

func NewCompanyRepository(db *DB) repository.CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.db.ddl(createCompaniesTableSQLite, createCompaniesTablePostgres)); err != nil {
		return fmt.Errorf("create companies table: %w", err)
	}
	return nil
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO companies (handle, name, description, num_employees, logo_url)
VALUES ($1, $2, $3, $4, $5)`,
		company.Handle,
		company.Name,
		company.Description,
		intOrNil(company.NumEmployees),
		stringOrNil(company.LogoURL),
	)
	if err != nil {
		switch classify(err) {
		case uniqueViolation:
			return domain.BadRequest("Duplicate company: %s", company.Handle)
		case checkViolation:
			return domain.BadRequest("Invalid company data: %s", company.Handle)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	predicate, args, err := companyFilterClause(filter, r.db.likeOperator())
	if err != nil {
		return nil, err
	}

	query := withWhere(`
SELECT `+companyColumns+`
FROM companies`, predicate) + "\nORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *company)
	}

	return companies, rows.Err()
}

func (r *CompanyRepository) Get(ctx context.Context, handle string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+companyColumns+`
FROM companies
WHERE handle = $1`,
		handle,
	)

	company, err := scanCompany(row)
	if notFound(err) {
		return nil, domain.NotFound("No company: %s", handle)
	}
	return company, err
}

func (r *CompanyRepository) Update(ctx context.Context, handle string, patch domain.CompanyPatch) (*domain.Company, error) {
	setCols, values, err := PartialUpdate(companyPatchFields(patch), companyColumnNames)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
UPDATE companies
SET %s
WHERE handle = $%d
RETURNING %s`, setCols, len(values)+1, companyColumns)

	row := r.db.QueryRowContext(ctx, query, append(values, handle)...)
	company, err := scanCompany(row)
	switch {
	case notFound(err):
		return nil, domain.NotFound("No company: %s", handle)
	case classify(err) == uniqueViolation:
		return nil, domain.BadRequest("Duplicate company name for: %s", handle)
	case classify(err) == checkViolation:
		return nil, domain.BadRequest("Invalid company data: %s", handle)
	}
	return company, err
}

func (r *CompanyRepository) Delete(ctx context.Context, handle string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("company delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.NotFound("No company: %s", handle)
	}
	return nil
}

func companyPatchFields(patch domain.CompanyPatch) []Field {
	var fields []Field
	if patch.Name != nil {
		fields = append(fields, Field{Name: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		fields = append(fields, Field{Name: "description", Value: *patch.Description})
	}
	if patch.NumEmployees.Set {
		fields = append(fields, Field{Name: "numEmployees", Value: patch.NumEmployees.SQLValue()})
	}
	if patch.LogoURL.Set {
		fields = append(fields, Field{Name: "logoUrl", Value: patch.LogoURL.SQLValue()})
	}
	return fields
}

func scanCompany(scanner interface {
	Scan(dest ...any) error
}) (*domain.Company, error) {
	var (
		company      domain.Company
		numEmployees sql.NullInt64
		logoURL      sql.NullString
	)
	if err := scanner.Scan(
		&company.Handle,
		&company.Name,
		&company.Description,
		&numEmployees,
		&logoURL,
	); err != nil {
		return nil, fmt.Errorf("scan company: %w", err)
	}

	company.NumEmployees = intPtr(numEmployees)
	company.LogoURL = stringPtr(logoURL)
	return &company, nil
}
