package http

import "jobly/internal/domain"

type CompanyResponse struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

type CompanyJobResponse struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Salary *int     `json:"salary"`
	Equity *float64 `json:"equity"`
}

type CompanyDetailResponse struct {
	CompanyResponse
	Jobs []CompanyJobResponse `json:"jobs"`
}

type JobResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}

// UserResponse never carries the password or the admin flag.
type UserResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type UserDetailResponse struct {
	UserResponse
	Jobs []int64 `json:"jobs"`
}

type ApplicationResponse struct {
	ID            int64                    `json:"id"`
	Title         string                   `json:"title"`
	Salary        *int                     `json:"salary"`
	Equity        *float64                 `json:"equity"`
	CompanyHandle string                   `json:"companyHandle"`
	CompanyName   string                   `json:"companyName"`
	Status        domain.ApplicationStatus `json:"status"`
}

func companyToResponse(c domain.Company) CompanyResponse {
	return CompanyResponse{
		Handle:       c.Handle,
		Name:         c.Name,
		Description:  c.Description,
		NumEmployees: c.NumEmployees,
		LogoURL:      c.LogoURL,
	}
}

func companyToDetailResponse(c domain.Company) CompanyDetailResponse {
	jobs := make([]CompanyJobResponse, len(c.Jobs))
	for i, j := range c.Jobs {
		jobs[i] = CompanyJobResponse{
			ID:     j.ID,
			Title:  j.Title,
			Salary: j.Salary,
			Equity: j.Equity,
		}
	}
	return CompanyDetailResponse{
		CompanyResponse: companyToResponse(c),
		Jobs:            jobs,
	}
}

func jobToResponse(j domain.Job) JobResponse {
	return JobResponse{
		ID:            j.ID,
		Title:         j.Title,
		Salary:        j.Salary,
		Equity:        j.Equity,
		CompanyHandle: j.CompanyHandle,
	}
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func userToDetailResponse(u domain.User) UserDetailResponse {
	jobs := u.Jobs
	if jobs == nil {
		jobs = []int64{}
	}
	return UserDetailResponse{
		UserResponse: userToResponse(u),
		Jobs:         jobs,
	}
}

func applicationToResponse(a domain.AppliedJob) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.JobID,
		Title:         a.Title,
		Salary:        a.Salary,
		Equity:        a.Equity,
		CompanyHandle: a.CompanyHandle,
		CompanyName:   a.CompanyName,
		Status:        a.Status,
	}
}
