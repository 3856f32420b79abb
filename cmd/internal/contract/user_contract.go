package contract

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,nospaces"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// LoginRequest accepts either the email address or the username as the
// identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=120"`
	Password   string `json:"password" validate:"required,min=8,max=64"`
}

type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	LastLogin  string `json:"last_login,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
