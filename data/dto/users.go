package dto

// RegisterUserRequestBody defines a request body for RegisterUser.
type RegisterUserRequestBody struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

// ActivateUserRequestBody defines a request body for ActivateUser.
type ActivateUserRequestBody struct {
	TokenPlaintext string `json:"token"`
}

// ResetUserPasswordRequestBody defines a request body for ResetUserPassword.
type ResetUserPasswordRequestBody struct {
	Password       string `json:"password"`
	TokenPlaintext string `json:"token"`
}

// UpdateUserRequestBody defines a request body for UpdateUser.
type UpdateUserRequestBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
}
