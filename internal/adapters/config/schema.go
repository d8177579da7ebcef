package config

// File is the on-disk shape of depot.yaml. Durations are Go duration strings.
type File struct {
	API       APIBlock       `yaml:"api"`
	Downloads DownloadsBlock `yaml:"downloads"`
	Telemetry TelemetryBlock `yaml:"telemetry"`
	Cache     CacheBlock     `yaml:"cache"`
}

// APIBlock configures the backend connection.
type APIBlock struct {
	BaseURL string `yaml:"baseURL"`
	Timeout string `yaml:"timeout"`
}

// DownloadsBlock configures where exported files are written.
type DownloadsBlock struct {
	Dir string `yaml:"dir"`
}

// TelemetryBlock toggles span logging.
type TelemetryBlock struct {
	Enabled bool `yaml:"enabled"`
}

// CacheBlock overrides cache policies globally and per entity.
type CacheBlock struct {
	Defaults PolicyBlock            `yaml:"defaults"`
	Entities map[string]PolicyBlock `yaml:"entities"`
}

// PolicyBlock is a partial cache policy. Unset fields keep the value below.
type PolicyBlock struct {
	StaleAfter string `yaml:"staleAfter"`
	GCAfter    string `yaml:"gcAfter"`
	Retry      *int   `yaml:"retry"`
	RetryDelay string `yaml:"retryDelay"`
}
