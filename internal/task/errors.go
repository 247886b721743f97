package task

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a due date is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date format, should be YYYY-MM-DD")

// IndexError is returned when a position falls outside the store.
type IndexError struct {
	Min int
	Max int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index, valid range is %d-%d", e.Min, e.Max)
}
