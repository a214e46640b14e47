package dto

// CreateActivationTokenRequestBody defines a request body for
// CreateActivationToken.
type CreateActivationTokenRequestBody struct {
	Email string `json:"email"`
}

// CreatePasswordResetTokenRequestBody defines a request body for
// CreatePasswordResetToken.
type CreatePasswordResetTokenRequestBody struct {
	Email string `json:"email"`
}

// CreateAuthenticationTokenRequestBody defines a request body for
// CreateAuthenticationToken.
type CreateAuthenticationTokenRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateOTPTokenRequestBody defines a request body for the second step of
// a two-factor login.
type CreateOTPTokenRequestBody struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
