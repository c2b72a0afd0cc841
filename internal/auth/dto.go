// AngelaMos | 2026
// dto.go

package auth

type SignUpRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email"    validate:"required,email,max=254"`
}

type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Username         string `json:"username"          validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,len=8"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
