package service

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/mailer"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type users interface {
	RegisterUser(body dto.RegisterUserRequestBody) (*data.User, error)
	ActivateUser(token string) (*data.User, error)
	ShowUser(userID int64) (*data.User, error)
	UpdateUser(userID int64, name, email, phone, city *string) (*data.User, error)
	UpdateUserPassword(userID int64, old, new, confirm string) (*data.User, error)
	UpdateUserProfilePicture(user *data.User, fileHeader *multipart.FileHeader) (*data.User, error)
	DeleteUser(userID int64) error
	ResetUserPassword(password string, token string) error
	GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error)
}

// RegisterUser service registers a new user account and emails an
// activation token. An email address that is already taken is reported as
// not permitted.
func (s *service) RegisterUser(body dto.RegisterUserRequestBody) (*data.User, error) {
	user := &data.User{
		Name:             body.Name,
		Email:            body.Email,
		Phone:            body.Phone,
		City:             body.City,
		Role:             body.Role,
		TwoFactorEnabled: body.TwoFactorEnabled,
		Activated:        false,
	}
	if user.Role == "" {
		user.Role = data.RoleUser
	}
	err := user.Password.Set(body.Password)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.RegisterUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrNotPermitted
		default:
			return nil, err
		}
	}
	// Generate a new activation token for user
	token, err := s.repo.CreateNewToken(user.ID, 3*24*time.Hour, data.ScopeActivation)
	if err != nil {
		return nil, err
	}
	// Send welcome email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"userName":        strings.Split(user.Name, " ")[0],
			"activationToken": token.Plaintext,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// ActivateUser service confirms a newly registered user's email address.
func (s *service) ActivateUser(token string) (*data.User, error) {
	v := validator.New()
	if data.ValidateTokenPlaintext(v, token); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	// Retrieve user associated with the activation token. If the user record
	// isn't found, it means the token is invalid
	user, err := s.repo.GetUserForToken(data.ScopeActivation, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired activation token")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	// Activate user
	user.Activated = true
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	// Delete all activation tokens for user
	err = s.repo.DeleteAllTokensForUser(data.ScopeActivation, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ShowUser service shows the details of a specific user.
func (s *service) ShowUser(userID int64) (*data.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser service updates a user's profile details.
func (s *service) UpdateUser(userID int64, name, email, phone, city *string) (*data.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}
	if phone != nil {
		user.Phone = *phone
	}
	if city != nil {
		user.City = *city
	}
	v := validator.New()
	v.Check(user.Name != "", "name", "must be provided")
	data.ValidateEmail(v, user.Email)
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("email", "a user with this email address already exists")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUserPassword service updates an authenticated user's password.
func (s *service) UpdateUserPassword(userID int64, old, new, confirm string) (*data.User, error) {
	// Validate password data
	v := validator.New()
	data.ValidatePasswordPlaintext(v, old)
	data.ValidatePasswordPlaintext(v, new)
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	if new != confirm {
		return nil, ErrPasswordMismatch
	}
	// Retrieve user by ID
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	// Check whether old matches the old password hash equivalent in the User data.
	// If there is a match, proceed and update password. Otherwise return with error.
	match, err := user.Password.Matches(old)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	err = user.Password.Set(new)
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	// Send password change notification email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"userName": strings.Split(user.Name, " ")[0],
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err = mailer.Send(user.Email, "user_password_change.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// UpdateUserProfilePicture service stores an uploaded profile image and
// records its URL against the user, keyed by the user's email address.
func (s *service) UpdateUserProfilePicture(user *data.User, fileHeader *multipart.FileHeader) (*data.User, error) {
	buffer, err := s.readImage(fileHeader)
	if err != nil {
		return nil, err
	}
	url, err := s.store.Store(buffer, user.Email, fileHeader.Filename)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = url
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// DeleteUser service deletes a user.
func (s *service) DeleteUser(userID int64) error {
	err := s.repo.DeleteUser(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// ResetUserPassword service resets a registered user's password.
func (s *service) ResetUserPassword(password string, token string) error {
	v := validator.New()
	data.ValidatePasswordPlaintext(v, password)
	data.ValidateTokenPlaintext(v, token)
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	// Retrieve user associated with password reset token
	user, err := s.repo.GetUserForToken(data.ScopePasswordReset, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired token")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return ErrFailedValidation
		default:
			return err
		}
	}
	// Set new password
	err = user.Password.Set(password)
	if err != nil {
		return err
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return ErrEditConflict
		default:
			return err
		}
	}
	// Delete all password reset tokens for user
	err = s.repo.DeleteAllTokensForUser(data.ScopePasswordReset, user.ID)
	if err != nil {
		return err
	}
	// Send password change notification email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"userName": strings.Split(user.Name, " ")[0],
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err = mailer.Send(user.Email, "user_password_change.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return nil
}

// GetUserForToken retrieves the user associated with a token.
func (s *service) GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error) {
	v := validator.New()
	user, err := s.repo.GetUserForToken(tokenScope, tokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired token")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	return user, nil
}
