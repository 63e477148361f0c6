package config

import "os"

// envFileName возвращает путь к .env до разбора остальных переменных.
func envFileName() string {
	if v, ok := os.LookupEnv("BLOG_ENV_FILE"); ok {
		return v
	}
	return ".env"
}
