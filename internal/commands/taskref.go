package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task ID from the first positional argument.
//
// Accepted forms are the server ID ("7") and the same with a leading
// hash ("#7"). IDs must be positive.
func ParseTaskRef(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}

	ref := strings.TrimPrefix(args[0], "#")
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseRefOrReport parses a task reference and prints the user error.
// ok is false when the caller should exit with exitcode.UserError.
func parseRefOrReport(args []string, errOut io.Writer) (id int64, ok bool) {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, false
	}
	return id, true
}
