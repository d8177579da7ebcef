package ports

import "context"

//go:generate mockgen -source=credentials.go -destination=mocks/mock_credentials.go -package=mocks

// CredentialStore holds the session token.
type CredentialStore interface {
	// Token returns the stored token or an empty string.
	Token() string
	// Save replaces the stored token.
	Save(token string) error
	// Clear forgets the stored token.
	Clear() error
	// Load rereads the token written by another process.
	Load() error
}

// CredentialWatcher reports changes made to the credentials by other processes.
type CredentialWatcher interface {
	// Watch calls onChange after every external change until ctx is done.
	Watch(ctx context.Context, onChange func()) error
}
