package domain

// User is a person who can sign in. Users are provisioned out of band; the
// API never creates them.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RoleID       *int64 `json:"role_id,omitempty"`
}

// UserSummary is the public projection of a user returned by listing endpoints.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Principal is the authenticated identity derived from a validated token.
type Principal struct {
	UserID   int64
	Username string
}

// Valid reports whether p identifies a user.
func (p Principal) Valid() bool {
	return p.UserID > 0
}

// Team groups users; membership decides which tasks a user can see.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
