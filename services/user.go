package services

import (
	"context"
	"strings"

	"MediTrack/apperror"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/rs/zerolog/log"
)

type UserService struct {
	users UserStore
	now   Clock
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, now: systemClock}
}

/*
* Validate role and password rules
* Hash the password and insert; a taken email is a conflict
 */
func (s *UserService) Create(ctx context.Context, actor Actor, req models.CreateUserRequest) (*models.User, error) {
	r, err := role.Parse(req.Role)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, apperror.Validation("name and email are required")
	}
	if err := ValidatePasswordRules(req.Password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Error from HashPassword")
		return nil, err
	}
	u := &models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   hash,
		Role:           r,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		IsActive:       true,
	}
	u.Stamp(actor.ID, s.now())
	if err := s.users.Create(ctx, u); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from creating user")
		}
		return nil, err
	}
	log.Info().Str("user", u.ID.Hex()).Str("role", string(r)).Msg("user created")
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	userID, err := ParseID(id, "user")
	if err != nil {
		return nil, err
	}
	return s.users.Get(ctx, userID)
}

func (s *UserService) List(ctx context.Context, roleName string) ([]models.User, error) {
	var f models.UserFilter
	if roleName != "" {
		r, err := role.Parse(roleName)
		if err != nil {
			return nil, apperror.Validation("%s", err.Error())
		}
		f.Role = r
	}
	users, err := s.users.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing users")
		return nil, err
	}
	return users, nil
}

func (s *UserService) ListDoctors(ctx context.Context) ([]models.User, error) {
	doctors, err := s.users.List(ctx, models.UserFilter{Role: role.Doctor, ActiveOnly: true})
	if err != nil {
		log.Error().Err(err).Msg("Error from listing doctors")
		return nil, err
	}
	return doctors, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id string, in models.UpdateUserRequest) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Specialization != nil {
		u.Specialization = *in.Specialization
	}
	if in.Role != nil {
		r, err := role.Parse(*in.Role)
		if err != nil {
			return nil, apperror.Validation("%s", err.Error())
		}
		if u.ID == actor.ID && r != u.Role {
			return nil, apperror.Precondition("you cannot change your own role")
		}
		u.Role = r
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsBlocked != nil {
		u.IsBlocked = *in.IsBlocked
		if !u.IsBlocked {
			u.LoginAttempts = 0
		}
	}
	u.Stamp(actor.ID, s.now())
	if err := s.users.Update(ctx, u); err != nil {
		log.Error().Err(err).Msg("Error from updating user")
		return nil, err
	}
	return u, nil
}

func (s *UserService) Deactivate(ctx context.Context, actor Actor, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.ID == actor.ID {
		return apperror.Precondition("you cannot deactivate your own account")
	}
	u.IsActive = false
	u.Stamp(actor.ID, s.now())
	return s.users.Update(ctx, u)
}

// SeedAdmin creates the first admin when no admin exists yet.
func (s *UserService) SeedAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	n, err := s.users.CountByRole(ctx, role.Admin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if name == "" {
		name = "Administrator"
	}
	_, err = s.Create(ctx, Actor{Role: role.Admin}, models.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(role.Admin),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
