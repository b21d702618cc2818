package dto

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutDTO carries the refresh token when the client still has one. Logout
// without it degrades to the original best-effort no-op.
type LogoutDTO struct {
	RefreshToken string `json:"refreshToken"`
}
