package domain

// Job is an opening posted by a company.
type Job struct {
	ID            int64
	Title         string
	Salary        *int
	Equity        *float64
	CompanyHandle string
}

// JobFilter narrows job listings. HasEquity only filters when true.
type JobFilter struct {
	Title     *string
	MinSalary *int
	HasEquity *bool
}

// JobPatch lists the job fields a partial update may change. The id and
// owning company are fixed at creation.
type JobPatch struct {
	Title  *string
	Salary Nullable[int]
	Equity Nullable[float64]
}

func (j Job) Validate() error {
	if j.Title == "" {
		return BadRequest("title is required")
	}
	if j.CompanyHandle == "" {
		return BadRequest("companyHandle is required")
	}
	if err := validateSalary(j.Salary); err != nil {
		return err
	}
	return validateEquity(j.Equity)
}

func (p JobPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return BadRequest("title must not be empty")
	}
	if err := validateSalary(p.Salary.Value); err != nil {
		return err
	}
	return validateEquity(p.Equity.Value)
}

func validateSalary(salary *int) error {
	if salary != nil && *salary < 0 {
		return BadRequest("salary must be non-negative")
	}
	return nil
}

func validateEquity(equity *float64) error {
	if equity != nil && (*equity < 0 || *equity > 1) {
		return BadRequest("equity must be between 0 and 1")
	}
	return nil
}
