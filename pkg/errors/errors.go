// Package errors provides custom error types for the stringcat system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the stringcat system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrPathRequired indicates that a catalog path was neither given
	// nor configured as a default
	ErrPathRequired = errors.New("catalog path is required when no default file has been configured")
)

// TranslationMissingError indicates that a (key, language) pair has no translation
type TranslationMissingError struct {
	Key      string
	Language string
}

// Error implements the error interface
func (e *TranslationMissingError) Error() string {
	return fmt.Sprintf("translation not found for key %q and language %q", e.Key, e.Language)
}

// Is implements errors.Is support
func (e *TranslationMissingError) Is(target error) bool {
	return target == ErrNotFound
}

// NewTranslationMissingError creates a new TranslationMissingError
func NewTranslationMissingError(key, language string) *TranslationMissingError {
	return &TranslationMissingError{Key: key, Language: language}
}

// KeyMissingError indicates that a string key does not exist in the catalog
type KeyMissingError struct {
	Key string
}

// Error implements the error interface
func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("string key %q not found", e.Key)
}

// Is implements errors.Is support
func (e *KeyMissingError) Is(target error) bool {
	return target == ErrNotFound
}

// NewKeyMissingError creates a new KeyMissingError
func NewKeyMissingError(key string) *KeyMissingError {
	return &KeyMissingError{Key: key}
}

// KeyExistsError indicates that a string key already exists in the catalog
type KeyExistsError struct {
	Key string
}

// Error implements the error interface
func (e *KeyExistsError) Error() string {
	return fmt.Sprintf("string key %q already exists", e.Key)
}

// Is implements errors.Is support
func (e *KeyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewKeyExistsError creates a new KeyExistsError
func NewKeyExistsError(key string) *KeyExistsError {
	return &KeyExistsError{Key: key}
}

// LanguageMissingError indicates that a language code appears nowhere in the catalog
type LanguageMissingError struct {
	Language string
}

// Error implements the error interface
func (e *LanguageMissingError) Error() string {
	return fmt.Sprintf("language %q not found in catalog", e.Language)
}

// Is implements errors.Is support
func (e *LanguageMissingError) Is(target error) bool {
	return target == ErrNotFound
}

// NewLanguageMissingError creates a new LanguageMissingError
func NewLanguageMissingError(language string) *LanguageMissingError {
	return &LanguageMissingError{Language: language}
}

// LanguageExistsError indicates that a language code is already present in the catalog
type LanguageExistsError struct {
	Language string
}

// Error implements the error interface
func (e *LanguageExistsError) Error() string {
	return fmt.Sprintf("language %q already exists in catalog", e.Language)
}

// Is implements errors.Is support
func (e *LanguageExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewLanguageExistsError creates a new LanguageExistsError
func NewLanguageExistsError(language string) *LanguageExistsError {
	return &LanguageExistsError{Language: language}
}

// InvalidLanguageError indicates that a supplied language code is unusable
type InvalidLanguageError struct {
	Language string
	Reason   string
}

// Error implements the error interface
func (e *InvalidLanguageError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("invalid language %q: %s", e.Language, e.Reason)
	}
	return fmt.Sprintf("invalid language: %s", e.Reason)
}

// Is implements errors.Is support
func (e *InvalidLanguageError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidLanguageError creates a new InvalidLanguageError
func NewInvalidLanguageError(language, reason string) *InvalidLanguageError {
	return &InvalidLanguageError{Language: language, Reason: reason}
}

// SourceLanguageError indicates an attempt to remove or rename the
// catalog's source language, which is structurally protected
type SourceLanguageError struct {
	Operation string // "remove", "rename"
	Language  string
}

// Error implements the error interface
func (e *SourceLanguageError) Error() string {
	return fmt.Sprintf("cannot %s source language %q", e.Operation, e.Language)
}

// Is implements errors.Is support
func (e *SourceLanguageError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewSourceLanguageError creates a new SourceLanguageError
func NewSourceLanguageError(operation, language string) *SourceLanguageError {
	return &SourceLanguageError{Operation: operation, Language: language}
}

// ParseError represents an error when parsing stored catalog content
type ParseError struct {
	Format  string // "json"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "walk"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidInput checks if an error is a validation error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPathRequired checks if an error is a missing-path error
func IsPathRequired(err error) bool {
	return errors.Is(err, ErrPathRequired)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
