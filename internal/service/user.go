package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

type userService struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{repo: repo, log: l}
}

// validEmail is a cheap structural check; real verification happens out of band.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func (s *userService) CreateUser(ctx context.Context, name, email string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if !validName(name) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
	}
	if !validEmail(email) {
		ferrs = append(ferrs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("user validation failed")
		return model.User{}, err
	}

	out, err := s.repo.Create(ctx, model.User{Name: name, Email: email})
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("create user failed")
		return model.User{}, err
	}
	s.log.Info().Str("user_id", out.ID.Hex()).Msg("user created")
	return out, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (model.User, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.User{}, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *userService) UpdateUser(ctx context.Context, id string, patch UserPatch) (model.User, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.User{}, NewInvalidInputError([]FieldError{*ferr})
	}

	user, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return model.User{}, err
	}

	var ferrs []FieldError
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !validName(name) {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
		} else {
			user.Name = name
		}
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !validEmail(email) {
			ferrs = append(ferrs, FieldError{Field: "email", Message: "must be a valid email address"})
		} else {
			user.Email = email
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.User{}, err
	}

	return s.repo.Update(ctx, user)
}
