package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Ratings       RatingsConfig
	ProjectID     string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RatingsConfig tunes the Elo replay. Changing either value rewrites every
// historical rating on the next rebuild.
type RatingsConfig struct {
	BaseRating float64
	KFactor    float64
}
