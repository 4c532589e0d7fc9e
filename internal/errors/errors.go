package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/logger"
)

// ErrNotInitialized is returned when the draft store has not been created yet.
var ErrNotInitialized = stderrors.New("storage not initialized")

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests the command that fixes err, if any.
func Hint(err error) string {
	if stderrors.Is(err, ErrNotInitialized) {
		return fmt.Sprintf("Run '%s init' first.", constants.AppName)
	}
	if strings.Contains(err.Error(), "unknown time zone") {
		return "Use an IANA name such as " + constants.DefaultTimezone + "."
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
