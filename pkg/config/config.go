// Package config loads the application configuration from the environment,
// optionally seeded from a .env file.
package config

// DB holds the database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Server holds the listen address.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Log holds the logger settings.
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
	Prefix string `envconfig:"PREFIX" default:"[bankcore]"`
}

// App is the root configuration.
type App struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	DB     DB     `envconfig:"DB"`
	Server Server `envconfig:"SERVER"`
	Log    Log    `envconfig:"LOG"`
}
