package domain

import "path/filepath"

const (
	// AppDirName is the name of depot's directory under the user config dir.
	AppDirName = "depot"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "depot.yaml"

	// CredentialsFileName is the name of the file holding the session token.
	CredentialsFileName = "credentials.json"

	// DownloadsDirName is the default directory for exported files.
	DownloadsDirName = "downloads"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultConfigPath returns the user-level config path below configDir.
// It joins configDir, depot and depot.yaml.
func DefaultConfigPath(configDir string) string {
	return filepath.Join(configDir, AppDirName, ConfigFileName)
}

// DefaultCredentialsPath returns the credential file path below configDir.
// It joins configDir, depot and credentials.json.
func DefaultCredentialsPath(configDir string) string {
	return filepath.Join(configDir, AppDirName, CredentialsFileName)
}

// DefaultDownloadsPath returns the export directory below configDir.
func DefaultDownloadsPath(configDir string) string {
	return filepath.Join(configDir, AppDirName, DownloadsDirName)
}
