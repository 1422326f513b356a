package packets

// returned for profile endpoints
type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// returned by signup and login
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupStatusResponse tells the admin UI which signup form to show.
type SignupStatusResponse struct {
	// Bootstrap is true until the first admin account exists.
	Bootstrap bool `json:"bootstrap"`
	// InviteEnabled is true when further admins may join with an invite code.
	InviteEnabled bool `json:"invite_enabled"`
}
