package lock

// Config holds configuration for the redis-backed run lock.
type Config struct {
	// Addr is the redis host:port. Empty selects the in-process lock.
	Addr string `mapstructure:"addr" default:""`
	// Password authenticates against redis.
	Password string `mapstructure:"password" default:""`
	// DB selects the redis logical database.
	DB int `mapstructure:"db" default:"0"`
}

// Enabled reports whether a redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
