package fio

// Config holds configuration for the FIO REST API.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://rest.fnar.net"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent identifies this service to the API operators.
	UserAgent string `mapstructure:"user_agent" default:"kawa-inventory"`
}
