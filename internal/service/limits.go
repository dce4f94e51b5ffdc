package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/octobees/stays/api/internal/repository"
)

// Limits bounds the number of rows a caller may request.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) clamp(limit int) int {
	if limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return limit
}

// logQueryFailure records a failed repository call, including the statement
// and bound arguments when the repository reported them.
func logQueryFailure(logger zerolog.Logger, err error, msg string) {
	event := logger.Error().Err(err)

	var execErr *repository.QueryExecutionError
	if errors.As(err, &execErr) {
		event = event.
			Str("op", execErr.Op).
			Str("statement", execErr.Statement).
			Interface("args", execErr.Args)
	}
	event.Msg(msg)
}
