package dto

type UpdateProfileDTO struct {
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
	LastName  string `json:"last_name"  validate:"omitempty,max=50"`
	Phone     string `json:"phone"      validate:"omitempty,e164"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Bio       string `json:"bio"        validate:"omitempty,max=500"`
}
