package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"MediTrack/apperror"
	"MediTrack/cache"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const loginFailWindow = 15 * time.Minute

type TokenIssuer interface {
	Issue(userID string, r role.Role, email string) (string, time.Time, error)
}

type AuthService struct {
	users       UserStore
	cache       cache.Cache
	tokens      TokenIssuer
	maxAttempts int
}

func NewAuthService(users UserStore, c cache.Cache, tokens TokenIssuer, maxAttempts int) *AuthService {
	return &AuthService{users: users, cache: c, tokens: tokens, maxAttempts: maxAttempts}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, input string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password missing or invalid")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(input))
}

/*
* At least 7 characters
* One uppercase, one number and one special character
 */
func ValidatePasswordRules(password string) error {
	if len(password) < 7 {
		return apperror.Validation("password must be at least 7 characters long")
	}
	const specialChars = "!@#$%^&*()-_=+[]{}|;:',.<>?/`~"
	var hasUpper, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= '0' && ch <= '9':
			hasNumber = true
		case strings.ContainsRune(specialChars, ch):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return apperror.Validation("password must contain at least one uppercase letter")
	}
	if !hasNumber {
		return apperror.Validation("password must contain at least one number")
	}
	if !hasSpecial {
		return apperror.Validation("password must contain at least one special character")
	}
	return nil
}

/*
* Count the failure in cache, falling back to the stored count
* Block the account once the limit is reached
 */
func (s *AuthService) recordFailure(ctx context.Context, user *models.User) error {
	attempts := user.LoginAttempts + 1
	if s.cache != nil {
		n, err := s.cache.Incr(ctx, cache.LoginFailKey(user.Email), loginFailWindow)
		if err != nil {
			log.Warn().Err(err).Msg("Error from login attempt counter")
		} else {
			attempts = int(n)
		}
	}
	user.LoginAttempts = attempts
	if attempts >= s.maxAttempts {
		user.IsBlocked = true
	}
	if err := s.users.Update(ctx, user); err != nil {
		log.Error().Err(err).Msg("Error from updating login attempts")
		return err
	}
	log.Warn().Str("email", user.Email).Int("attempts", attempts).Msg("failed login")
	if user.IsBlocked {
		return apperror.Forbidden("account blocked after too many failed attempts, contact an administrator")
	}
	return apperror.Unauthorized("invalid email or password")
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperror.Validation("email and password are required")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err != nil {
		log.Error().Err(err).Msg("Error from GetByEmail")
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperror.Forbidden("account is blocked, contact an administrator")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}
	if err := verifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, s.recordFailure(ctx, user)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.LoginFailKey(user.Email)); err != nil {
			log.Warn().Err(err).Msg("Error from clearing login attempts")
		}
	}
	if user.LoginAttempts != 0 {
		user.LoginAttempts = 0
		if err := s.users.Update(ctx, user); err != nil {
			log.Error().Err(err).Msg("Error from resetting login attempts")
			return nil, err
		}
	}

	token, exp, err := s.tokens.Issue(user.ID.Hex(), user.Role, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Error from issuing token")
		return nil, err
	}
	log.Info().Str("user", user.ID.Hex()).Str("role", string(user.Role)).Msg("login")
	return &models.LoginResponse{Token: token, ExpiresAt: exp.Unix(), User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.Me, error) {
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &models.Me{User: user, Privileges: role.Privileges(user.Role)}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, req models.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := verifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		return apperror.Unauthorized("current password is incorrect")
	}
	if req.OldPassword == req.NewPassword {
		return apperror.Validation("new password must differ from the current one")
	}
	if err := ValidatePasswordRules(req.NewPassword); err != nil {
		return err
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("Error from HashPassword")
		return err
	}
	user.PasswordHash = hash
	user.Stamp(actor.ID, time.Now().UTC())
	if err := s.users.Update(ctx, user); err != nil {
		log.Error().Err(err).Msg("Error from updating password")
		return err
	}
	return nil
}
