package process

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is an OS command to run to completion
type Command struct {
	executable string
	args       []string
}

// NewCommand creates a new Command value object
func NewCommand(executable string, args ...string) (Command, error) {
	if executable == "" {
		return Command{}, fmt.Errorf("executable cannot be empty")
	}

	return Command{
		executable: executable,
		args:       append([]string(nil), args...), // Copy slice
	}, nil
}

// Executable returns the command executable
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the command arguments
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// String renders the command line, quoting arguments that contain spaces
func (c Command) String() string {
	parts := make([]string, 0, len(c.args)+1)
	parts = append(parts, c.executable)
	for _, a := range c.args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// FullCommandLine returns the complete command line including executable and args
func (c Command) FullCommandLine() []string {
	result := make([]string, 0, len(c.args)+1)
	result = append(result, c.executable)
	result = append(result, c.args...)
	return result
}
