package ports

//go:generate mockgen -source=feedback.go -destination=mocks/mock_feedback.go -package=mocks

// Notifier shows transient messages to the user. Calls never block on the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LoginBoundary sends the user back to the login flow after the session ended.
type LoginBoundary interface {
	RequireLogin(reason string)
}

// FileSaver hands exported bytes to the user as a file.
type FileSaver interface {
	// Save stores data under name and returns where it was written.
	Save(name string, data []byte) (string, error)
}
