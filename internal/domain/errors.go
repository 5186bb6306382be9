package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrSuperseded      = errors.New("dialog superseded")
	ErrUserCanceled    = errors.New("user canceled")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrEmptyTitle      = errors.New("title is empty")
)

// CatalogError represents a failure loading a translation catalog
type CatalogError struct {
	Op   string // Operation: "parse", "read", "watch"
	Path string // Optional: catalog file
	Lang string // Optional: offending language
	Err  error  // Underlying error
}

func (e *CatalogError) Error() string {
	switch {
	case e.Path != "" && e.Lang != "":
		return fmt.Sprintf("catalog %s [%s:%s]: %v", e.Op, e.Path, e.Lang, e.Err)
	case e.Path != "":
		return fmt.Sprintf("catalog %s [%s]: %v", e.Op, e.Path, e.Err)
	case e.Lang != "":
		return fmt.Sprintf("catalog %s [%s]: %v", e.Op, e.Lang, e.Err)
	default:
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
	}
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// ConfigError represents an error loading or validating configuration
type ConfigError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
