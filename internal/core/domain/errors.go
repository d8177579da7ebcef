package domain

import "go.trai.ch/zerr"

var (
	// ErrTransport is returned when a request never produced an HTTP response.
	ErrTransport = zerr.New("request could not be sent")

	// ErrUnauthenticated is returned when the backend rejected the credentials with 401.
	ErrUnauthenticated = zerr.New("session expired, please log in again")

	// ErrRequestFailed is returned when the backend answered with a non-2xx status.
	ErrRequestFailed = zerr.New("request failed")

	// ErrDecodeFailed is returned when a response body cannot be decoded.
	ErrDecodeFailed = zerr.New("failed to decode response")

	// ErrConfigNotFound is returned when no configuration file is found.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidBaseURL is returned when the configured API base URL is unusable.
	ErrInvalidBaseURL = zerr.New("invalid api base url")

	// ErrInvalidPolicy is returned when a cache policy contains negative retries or an unknown entity.
	ErrInvalidPolicy = zerr.New("invalid cache policy")

	// ErrCredentialReadFailed is returned when the credential file cannot be read.
	ErrCredentialReadFailed = zerr.New("failed to read credentials")

	// ErrCredentialWriteFailed is returned when the credential file cannot be written.
	ErrCredentialWriteFailed = zerr.New("failed to write credentials")

	// ErrCredentialWatchFailed is returned when the credential file cannot be watched.
	ErrCredentialWatchFailed = zerr.New("failed to watch credentials")

	// ErrDownloadFailed is returned when an exported file cannot be saved.
	ErrDownloadFailed = zerr.New("failed to save downloaded file")

	// ErrMissingID is returned when an operation that needs an entity id receives an empty one.
	ErrMissingID = zerr.New("missing entity id")

	// ErrInvalidTransition is returned when an inbound receipt cannot move to the requested status.
	ErrInvalidTransition = zerr.New("invalid inbound status transition")

	// ErrEditorNotEditing is returned when a draft is changed or submitted outside the editing phase.
	ErrEditorNotEditing = zerr.New("editor is not editing")

	// ErrMutationFailed marks a write that failed after its notification was shown.
	ErrMutationFailed = zerr.New("mutation failed")

	// ErrInvalidInput is returned when command input cannot be decoded into an entity payload.
	ErrInvalidInput = zerr.New("invalid input")
)
