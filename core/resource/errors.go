package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an ID lookup misses. The API layer maps it to
// a 404 with an empty body.
var ErrNotFound = errors.New("not found")

// ValidationError carries the ordered list of human-readable violation
// messages for a rejected write. The API layer maps it to a 400 with the
// message list as the body.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ConflictError carries one message per violated unique constraint. Like
// validation errors it maps to a 400.
type ConflictError struct {
	Messages []string
}

func (e *ConflictError) Error() string {
	return strings.Join(e.Messages, "; ")
}

const uniqueViolationCode = "23505"

// TranslateError converts persistence-engine failures into the error
// taxonomy of the action set: gorm's record-not-found becomes ErrNotFound
// and a postgres unique violation becomes a ConflictError naming the
// conflicting field. Anything else passes through unchanged.
func TranslateError(meta *Metadata, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		for i := range meta.Fields {
			field := &meta.Fields[i]
			if field.Unique && strings.Contains(pgErr.ConstraintName, field.Column) {
				return &ConflictError{Messages: []string{
					fmt.Sprintf("%s.%s must be unique", meta.Name, field.Name),
				}}
			}
		}
		return &ConflictError{Messages: []string{
			fmt.Sprintf("%s violates a unique constraint", meta.Name),
		}}
	}
	return err
}
