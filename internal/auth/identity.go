package auth

import "jobly/internal/domain"

// Identity is the caller resolved from a bearer token. A nil *Identity is an
// anonymous caller.
type Identity struct {
	Username string
	IsAdmin  bool
}

func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return domain.Unauthorized("Unauthorized")
	}
	return nil
}

func RequireElevated(id *Identity) error {
	if id == nil || !id.IsAdmin {
		return domain.Unauthorized("Unauthorized")
	}
	return nil
}

// RequireElevatedOrSelf admits admins and the owner of the resource.
func RequireElevatedOrSelf(id *Identity, owner string) error {
	if id == nil {
		return domain.Unauthorized("Unauthorized")
	}
	if id.IsAdmin || id.Username == owner {
		return nil
	}
	return domain.Unauthorized("Unauthorized")
}
