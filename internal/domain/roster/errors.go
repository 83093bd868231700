package roster

import "errors"

var (
	ErrWeekNotFound   = errors.New("week not found")
	ErrInvalidWeekKey = errors.New("invalid week key")
)
