package domain

// User represents an account on the board. PasswordHash is filled by the
// repository and cleared by the service layer before a user is returned.
type User struct {
	Username     string
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
	PasswordHash string
	Jobs         []int64
}

// NewUser carries registration input. An empty Password asks the service
// to generate one.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// UserPatch lists the user fields a partial update may change.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}
