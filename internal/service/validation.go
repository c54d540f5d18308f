package service

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

// parseObjectID performs the structural 24-hex id check at the boundary, so
// malformed ids never reach a repository lookup.
func parseObjectID(field, raw string) (primitive.ObjectID, *FieldError) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, &FieldError{Field: field, Message: "must be a 24-character hex id"}
	}
	return id, nil
}

// parseObjectIDs validates a list of ids under one field name.
func parseObjectIDs(field string, raw []string) ([]primitive.ObjectID, *FieldError) {
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, ferr := parseObjectID(field, r)
		if ferr != nil {
			return nil, ferr
		}
		out = append(out, id)
	}
	return out, nil
}

func isValidPosition(pos string) bool {
	s := strings.ToUpper(strings.TrimSpace(pos))
	switch s {
	case "PG", "SG", "SF", "PF", "C":
		return true
	default:
		return false
	}
}

func isValidMatchStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case model.MatchStatusInProgress, model.MatchStatusCompleted:
		return true
	default:
		return false
	}
}

// validName checks the shared 2..50 rune length rule used for user, team and
// player names.
func validName(name string) bool {
	ln := len([]rune(name))
	return ln >= 2 && ln <= 50
}
