package enver

import (
	"fmt"
	"regexp"
)

var (
	namePattern     = regexp.MustCompile(`^[A-Z_]+$`)
	titlePattern    = regexp.MustCompile(`^[A-Za-z ]+$`)
	fileNamePattern = regexp.MustCompile(`^[a-z]+\.env$`)
)

// Importance is the severity reported when a declared variable is missing.
type Importance string

const (
	Ignore Importance = "ignore"
	Warn   Importance = "warn"
	Error  Importance = "error"
)

// Valid reports whether i is one of Ignore, Warn or Error.
func (i Importance) Valid() bool {
	switch i {
	case Ignore, Warn, Error:
		return true
	}
	return false
}

// Entry declares one expected environment variable.
//
// Name must consist of uppercase ASCII letters and underscores, Title of letters
// and spaces. Both are checked by Manager.Init, not at construction. An empty
// Default means the variable has no default.
type Entry struct {
	Name        string     `json:"name" yaml:"name"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Options     string     `json:"options" yaml:"options"`
	Default     string     `json:"default,omitempty" yaml:"default,omitempty"`
	Importance  Importance `json:"importance" yaml:"importance"`
}

// Tally counts declared entries found missing by Manager.Load, by importance.
type Tally struct {
	Errors   int
	Warnings int
	Ignored  int
}

func (t Tally) String() string {
	return fmt.Sprintf("%d error, %d warnings, %d ignored", t.Errors, t.Warnings, t.Ignored)
}
