package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	InvalidRepositoryURL  ErrorKind = "invalid_repository_url"
	RepositoryUnreachable ErrorKind = "repository_unreachable"
	RepositoryNotFound    ErrorKind = "repository_not_found"
	EmptyRepository       ErrorKind = "empty_repository"
	NoURLsToPublish       ErrorKind = "no_urls_to_publish"
	StorageUploadFailed   ErrorKind = "storage_upload_failed"
	UnexpectedFailure     ErrorKind = "unexpected_failure"
)

// Sentinels to match against with errors.Is
var (
	ErrInvalidRepositoryURL  = &PipelineError{Kind: InvalidRepositoryURL}
	ErrRepositoryUnreachable = &PipelineError{Kind: RepositoryUnreachable}
	ErrRepositoryNotFound    = &PipelineError{Kind: RepositoryNotFound}
	ErrEmptyRepository       = &PipelineError{Kind: EmptyRepository}
	ErrNoURLsToPublish       = &PipelineError{Kind: NoURLsToPublish}
	ErrStorageUploadFailed   = &PipelineError{Kind: StorageUploadFailed}
	ErrUnexpectedFailure     = &PipelineError{Kind: UnexpectedFailure}
)

// PipelineError is returned by every stage of the sitemap pipeline.
// Message is meant to be shown to the end user as is.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates a pipeline error of a given kind wrapping the cause
func NewError(kind ErrorKind, err error, format string, args ...any) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Implement error interface
func (e *PipelineError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches any pipeline error of the same kind
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the kind of the error,
// anything unclassified is an unexpected failure.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return UnexpectedFailure
}

// DisplayMessage returns the message fit for the end user
func DisplayMessage(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
