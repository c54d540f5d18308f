package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, teams repository.TeamRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, teams: teams, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, teamID, name string, number int, position, photo string) (model.Player, error) {
	name = strings.TrimSpace(name)
	position = strings.ToUpper(strings.TrimSpace(position))

	var ferrs []FieldError
	tid, ferr := parseObjectID("team_id", teamID)
	if ferr != nil {
		ferrs = append(ferrs, *ferr)
	}
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if !validName(name) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
	}
	if number < 0 || number > 99 {
		ferrs = append(ferrs, FieldError{Field: "number", Message: "must be between 0 and 99"})
	}
	if position != "" && !isValidPosition(position) {
		ferrs = append(ferrs, FieldError{Field: "position", Message: "must be one of PG|SG|SF|PF|C"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed (structure)")
		return model.Player{}, err
	}

	// Existence check before attempting persistence.
	if _, err := s.teams.GetByID(ctx, tid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Player{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{
		TeamID:   tid,
		Name:     name,
		Number:   number,
		Position: position,
		Photo:    photo,
	})
	if err != nil {
		s.log.Error().Err(err).Str("team_id", tid.Hex()).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Str("player_id", out.ID.Hex()).Str("team_id", tid.Hex()).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.Player{}, NewInvalidInputError([]FieldError{*ferr})
	}
	return s.players.GetByID(ctx, oid)
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID string, page repository.Page) (repository.PageResult[model.Player], error) {
	tid, ferr := parseObjectID("team_id", teamID)
	if ferr != nil {
		return repository.PageResult[model.Player]{}, NewInvalidInputError([]FieldError{*ferr})
	}
	p := normalizePage(page)
	res, err := s.players.ListByTeam(ctx, tid, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (model.Player, error) {
	oid, ferr := parseObjectID("id", id)
	if ferr != nil {
		return model.Player{}, NewInvalidInputError([]FieldError{*ferr})
	}

	player, err := s.players.GetByID(ctx, oid)
	if err != nil {
		return model.Player{}, err
	}

	var ferrs []FieldError
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !validName(name) {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
		} else {
			player.Name = name
		}
	}
	if patch.Number != nil {
		if *patch.Number < 0 || *patch.Number > 99 {
			ferrs = append(ferrs, FieldError{Field: "number", Message: "must be between 0 and 99"})
		} else {
			player.Number = *patch.Number
		}
	}
	if patch.Position != nil {
		pos := strings.ToUpper(strings.TrimSpace(*patch.Position))
		if pos != "" && !isValidPosition(pos) {
			ferrs = append(ferrs, FieldError{Field: "position", Message: "must be one of PG|SG|SF|PF|C"})
		} else {
			player.Position = pos
		}
	}
	if patch.Photo != nil {
		player.Photo = *patch.Photo
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Player{}, err
	}

	return s.players.Update(ctx, player)
}
