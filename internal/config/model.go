package config

import "time"

type Config struct {
	App          App               `json:"app"`
	Matcher      Matcher           `json:"matcher"`
	Dictionaries map[string]string `json:"dictionaries"` // name -> path of the pattern file
	Server       Server            `json:"server"`
	Cache        Cache             `json:"cache"`
	Watch        bool              `json:"watch"`
}

type App struct {
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
	GinMode  string `json:"gin_mode"`
}

type Matcher struct {
	CaseInsensitive bool `json:"case_insensitive"`
	Normalise       bool `json:"normalise"`
	Overlapping     bool `json:"overlapping"`
}

type Server struct {
	Addr      string  `json:"addr"`
	RateLimit float64 `json:"rate_limit"` // requests per second, 0 disables limiting
	Burst     int     `json:"burst"`
	AuthToken string  `json:"auth_token"`
	MaxBody   int64   `json:"max_body"`
}

type Cache struct {
	Capacity int `json:"capacity"`
	TTLSecs  int `json:"ttl_secs"`
}

// TTL returns the cache expiry as a duration.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSecs) * time.Second
}
