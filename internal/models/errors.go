package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyValue     = errors.New("empty value")
	ErrDuplicateColor = errors.New("duplicate color")
	ErrProtectedColor = errors.New("protected color")
	ErrUnknownColor   = errors.New("unknown color")
	ErrSelfLink       = errors.New("self link")
	ErrCircularLink   = errors.New("circular link")
	ErrInvalidFormat  = errors.New("invalid format")
)

// EmptyValueError reports a required string field that is blank after trimming.
type EmptyValueError struct {
	Field string
}

func (e EmptyValueError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e EmptyValueError) Unwrap() error { return ErrEmptyValue }

type DuplicateColorError struct {
	Name string
}

func (e DuplicateColorError) Error() string {
	return fmt.Sprintf("color %q already exists", e.Name)
}

func (e DuplicateColorError) Unwrap() error { return ErrDuplicateColor }

// ProtectedColorError is returned when removing one of RequiredColors.
type ProtectedColorError struct {
	Name string
}

func (e ProtectedColorError) Error() string {
	return fmt.Sprintf("color %q is required and cannot be removed", e.Name)
}

func (e ProtectedColorError) Unwrap() error { return ErrProtectedColor }

type UnknownColorError struct {
	Name string
}

func (e UnknownColorError) Error() string {
	return fmt.Sprintf("color %q does not exist", e.Name)
}

func (e UnknownColorError) Unwrap() error { return ErrUnknownColor }

type SelfLinkError struct {
	Name string
}

func (e SelfLinkError) Error() string {
	return fmt.Sprintf("color %q cannot be linked to itself", e.Name)
}

func (e SelfLinkError) Unwrap() error { return ErrSelfLink }

// CircularLinkError carries the chain that would have closed into a cycle,
// starting at the proposed target and ending back at the source.
type CircularLinkError struct {
	Source string
	Target string
	Path   []string
}

func (e CircularLinkError) Error() string {
	return fmt.Sprintf("linking %q to %q would create a cycle: %s -> %s", e.Source, e.Target, e.Source, strings.Join(e.Path, " -> "))
}

func (e CircularLinkError) Unwrap() error { return ErrCircularLink }

// InvalidFormatError reports a color or typography value that fails its grammar.
type InvalidFormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e InvalidFormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s has invalid value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("%s has invalid value %q: %s", e.Field, e.Value, e.Reason)
}

func (e InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// ValidationResult is the structured outcome of an entity's Validate method.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newValidationResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
