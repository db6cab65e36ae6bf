package config

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			GinMode:  "release",
		},
		Dictionaries: make(map[string]string),
		Server: Server{
			Addr:      ":8080",
			RateLimit: 50,
			Burst:     100,
			MaxBody:   1 << 20,
		},
		Cache: Cache{
			Capacity: 64,
			TTLSecs:  3600,
		},
		Watch: true,
	}
}
