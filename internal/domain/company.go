package domain

// Company is an employer listed on the board, keyed by its handle.
type Company struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int
	LogoURL      *string
	Jobs         []Job
}

// CompanyFilter narrows company listings. Nil fields are not applied.
type CompanyFilter struct {
	MinEmployees *int
	MaxEmployees *int
	Name         *string
}

// CompanyPatch lists the company fields a partial update may change.
type CompanyPatch struct {
	Name         *string
	Description  *string
	NumEmployees Nullable[int]
	LogoURL      Nullable[string]
}

func (p CompanyPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return BadRequest("name must not be empty")
	}
	if p.NumEmployees.Value != nil && *p.NumEmployees.Value < 0 {
		return BadRequest("numEmployees must be non-negative")
	}
	return nil
}
