package domain

type ApplicationStatus string

const (
	StatusInterested ApplicationStatus = "interested"
	StatusApplied    ApplicationStatus = "applied"
	StatusAccepted   ApplicationStatus = "accepted"
	StatusRejected   ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusInterested, StatusApplied, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ParseApplicationStatus rejects anything outside the fixed enumeration.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	status := ApplicationStatus(raw)
	if !status.Valid() {
		return "", BadRequest("Invalid status: %s", raw)
	}
	return status, nil
}

// AppliedJob is one row of a user's application list.
type AppliedJob struct {
	JobID         int64
	Title         string
	Salary        *int
	Equity        *float64
	CompanyHandle string
	CompanyName   string
	Status        ApplicationStatus
}
