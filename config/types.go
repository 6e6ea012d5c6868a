package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Auth    AuthConfig    `mapstructure:"auth"`
	API     APIConfig     `mapstructure:"api"`
	Request RequestConfig `mapstructure:"request"`
	Filters FilterConfig  `mapstructure:"filters"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AuthConfig holds the credentials used to log in. All empty means anonymous.
type AuthConfig struct {
	Login       string `mapstructure:"login"`
	Password    string `mapstructure:"password"`
	AccessToken string `mapstructure:"access_token"`
}

// HasCredentials reports whether a login should be attempted
func (a AuthConfig) HasCredentials() bool {
	return a.Login != "" || a.Password != "" || a.AccessToken != ""
}

// APIConfig holds the service endpoints
type APIConfig struct {
	URL      string `mapstructure:"url"`
	LoginURL string `mapstructure:"login_url"`
}

// RequestConfig controls throttling, retries and paging
type RequestConfig struct {
	RPS     int           `mapstructure:"rps"`
	RPM     int           `mapstructure:"rpm"`
	Retries int           `mapstructure:"retries"`
	Limit   int           `mapstructure:"limit"`
	Lang    string        `mapstructure:"lang"`
	Timeout time.Duration `mapstructure:"timeout"`
	Strict  bool          `mapstructure:"strict"`
}

// FilterConfig contains named post filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
