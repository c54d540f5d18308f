package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

// teamService holds team use-case logic: validation + orchestration, no transport / driver details.
type teamService struct {
	repo repository.TeamRepository
	log  zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, userID, name, category, photo string) (model.Team, error) {
	start := time.Now()
	name = strings.TrimSpace(name)

	var ferrs []FieldError
	uid, ferr := parseObjectID("user_id", userID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if !validName(name) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, err
	}

	out, err := s.repo.Create(ctx, model.Team{
		UserID:   uid,
		Name:     name,
		Category: strings.TrimSpace(category),
		Photo:    photo,
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("team_id", out.ID.Hex()).Msg("team created")
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (model.Team, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.Team{}, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *teamService) ListTeamsByUser(ctx context.Context, userID string, page repository.Page) (repository.PageResult[model.Team], error) {
	uid, ferr := parseObjectID("user_id", userID)
	if ferr != nil {
		return repository.PageResult[model.Team]{}, NewInvalidInputError([]FieldError{*ferr})
	}
	p := normalizePage(page)
	res, err := s.repo.ListByUser(ctx, uid, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list teams failed")
		return repository.PageResult[model.Team]{}, err
	}
	return res, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, patch TeamPatch) (model.Team, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.Team{}, NewInvalidInputError([]FieldError{*ferr})
	}

	team, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return model.Team{}, err
	}

	var ferrs []FieldError
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !validName(name) {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
		} else {
			team.Name = name
		}
	}
	if patch.Category != nil {
		team.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Photo != nil {
		team.Photo = *patch.Photo
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Team{}, err
	}

	return s.repo.Update(ctx, team)
}
