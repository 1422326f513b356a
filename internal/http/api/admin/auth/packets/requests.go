package packets

// SignupRequest creates a station admin. The first signup on a fresh install
// needs no invite; every later one must carry the configured invite code.
type SignupRequest struct {
	Email      string  `json:"email"       binding:"required,email"`
	Password   string  `json:"password"    binding:"required,min=8"`
	Name       *string `json:"name"`
	InviteCode string  `json:"invite_code" binding:"omitempty,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest replaces the admin's email and display name.
type UpdateProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}
