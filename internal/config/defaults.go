package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "site-keeper",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
			LogLevel:      "info",
		},
		Storage: Storage{
			Cache: Cache{
				TTL: 10 * time.Minute,
			},
			S3: S3{
				Region:         "us-east-1",
				Folder:         "uploads",
				MaxUploadBytes: 10 << 20,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		AI: AI{
			RequestTimeout: 60 * time.Second,
		},
		Workers: Workers{
			FriendHealthInterval: 6 * time.Hour,
		},
	}
}
