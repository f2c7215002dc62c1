package api

// Identity is the authenticated user's profile as confirmed by the server.
// It is replaced wholesale on every verification, never patched.
type Identity struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// Activity is one catalog entry. Participants are server-ordered emails.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Catalog maps activity name to activity. Each fetch produces a complete
// replacement snapshot.
type Catalog map[string]Activity

// Account is one row of the admin roster.
type Account struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
