package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrPositionRequired indicates no task index was provided.
var ErrPositionRequired = errors.New("task index required")

// ParsePosition parses a single 1-based task index from args.
// Range checking against the store is left to the store itself, so "0"
// parses here and is rejected by task.Store.Toggle.
func ParsePosition(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrPositionRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task index: %s", arg)
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task index: %s", arg)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
