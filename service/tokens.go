package service

import (
	"errors"
	"strings"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/mailer"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

// otpTTL is how long an emailed one-time passcode stays valid.
const otpTTL = 10 * time.Minute

type tokens interface {
	CreateActivationToken(email string) error
	CreateAuthenticationToken(email string, password string) (*data.Token, bool, error)
	VerifyOTP(email string, code string) (*data.Token, error)
	DeleteAuthenticationToken(userID int64) error
	CreatePasswordResetToken(email string) error
}

// CreateActivationToken service creates a new activation token.
func (s *service) CreateActivationToken(email string) error {
	v := validator.New()
	if data.ValidateEmail(v, email); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("email", "no matching email address found")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return ErrFailedValidation
		default:
			return err
		}
	}
	// if user is already activated, no need to proceed
	if user.Activated {
		v.AddError("email", "user with this email has already been activated")
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	token, err := s.repo.CreateNewToken(user.ID, 3*24*time.Hour, data.ScopeActivation)
	if err != nil {
		return err
	}
	// Send new activation token via email
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
	return nil
}

// CreateAuthenticationToken service checks a user's credentials. For users
// without two-factor enabled it returns a bearer token. For users with
// two-factor enabled it emails a one-time passcode, caches it against the
// user's email and returns true so the handler can ask for the second step.
func (s *service) CreateAuthenticationToken(email string, password string) (*data.Token, bool, error) {
	v := validator.New()
	data.ValidateEmail(v, email)
	data.ValidatePasswordPlaintext(v, password)
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, false, ErrFailedValidation
	}
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, false, ErrInvalidCredentials
		default:
			return nil, false, err
		}
	}
	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, false, err
	}
	if !match {
		return nil, false, ErrInvalidCredentials
	}
	if user.TwoFactorEnabled {
		code, err := generateOTP()
		if err != nil {
			return nil, false, err
		}
		s.cache.Set(user.Email, code, otpTTL)
		s.background(func() {
			data := map[string]string{
				"userName": strings.Split(user.Name, " ")[0],
				"otpCode":  code,
			}
			mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
			err := mailer.Send(user.Email, "user_otp.tmpl", data)
			if err != nil {
				s.logger.PrintError(err, nil)
			}
		})
		return nil, true, nil
	}
	token, err := s.repo.CreateNewToken(user.ID, 24*time.Hour, data.ScopeAuthentication)
	if err != nil {
		return nil, false, err
	}
	return token, false, nil
}

// VerifyOTP service completes a two-factor login. A valid passcode is
// exchanged for a bearer token and evicted from the cache.
func (s *service) VerifyOTP(email string, code string) (*data.Token, error) {
	v := validator.New()
	data.ValidateEmail(v, email)
	v.Check(code != "", "code", "must be provided")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	item := s.cache.Get(email)
	if item == nil || item.Value() != code {
		return nil, ErrInvalidCredentials
	}
	s.cache.Delete(email)
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	token, err := s.repo.CreateNewToken(user.ID, 24*time.Hour, data.ScopeAuthentication)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteAuthenticationToken deletes all authentication tokens for a user.
func (s *service) DeleteAuthenticationToken(userID int64) error {
	// Delete all authentication tokens for user
	err := s.repo.DeleteAllTokensForUser(data.ScopeAuthentication, userID)
	if err != nil {
		return err
	}
	return nil
}

// CreatePasswordResetToken service creates a new password reset token.
func (s *service) CreatePasswordResetToken(email string) error {
	v := validator.New()
	if data.ValidateEmail(v, email); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("email", "no matching email address found")
			ErrFailedValidation = s.failedValidation(v.Errors)
			return ErrFailedValidation
		default:
			return err
		}
	}
	// if user isn't activated, no need to proceed
	if !user.Activated {
		v.AddError("email", "user account must be activated")
		ErrFailedValidation = s.failedValidation(v.Errors)
		return ErrFailedValidation
	}
	token, err := s.repo.CreateNewToken(user.ID, 30*time.Minute, data.ScopePasswordReset)
	if err != nil {
		return err
	}
	// Send password reset token via email
	s.background(func() {
		data := map[string]string{
			"userName":           strings.Split(user.Name, " ")[0],
			"passwordResetToken": token.Plaintext,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "user_password_reset.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return nil
}
