package domain

import "time"

// Role is the side of the marketplace an account acts on.
type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFreelancer || r == RoleClient
}

// Account is a directory entry. PasswordHash never leaves the directory:
// callers only ever see the Session projection.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the currently authenticated identity, without its credential.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Valid reports whether s is a usable restored session: it names an
// account and carries a known role.
func (s Session) Valid() bool {
	return s.ID != "" && s.Role.Valid()
}

// Session projects the account onto its credential-free form.
func (a *Account) Session() Session {
	return Session{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
