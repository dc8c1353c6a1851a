package handlers

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" example:"capote@example.com"`
	Username string `json:"username" validate:"required,max=150,slug" example:"capote"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150" example:"capote"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,max=150"`
}

type TokenResponse struct {
	Username string `json:"username" example:"capote"`
	Token    string `json:"token"`
}
