package geocode

import "time"

const (
	defaultTimeoutSeconds = 7
	minTimeoutSeconds     = 5
	maxTimeoutSeconds     = 10
)

type Config struct {
	BaseURL        string `envconfig:"BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent      string `envconfig:"USER_AGENT" default:"zayche_astrology_bot"`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"7"`
	DefaultZone    string `envconfig:"DEFAULT_ZONE" default:"Asia/Tehran"`
}

// Timeout возвращает таймаут запроса, зажатый в разумный коридор 5-10с
func (c *Config) Timeout() time.Duration {
	s := c.TimeoutSeconds
	if s <= 0 {
		s = defaultTimeoutSeconds
	}
	if s < minTimeoutSeconds {
		s = minTimeoutSeconds
	}
	if s > maxTimeoutSeconds {
		s = maxTimeoutSeconds
	}
	return time.Duration(s) * time.Second
}
