package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	GoogleClientID      string
	GoogleClientSecret  string
	GoogleRedirectURI   string
	FacebookAppID       string
	FacebookAppSecret   string
	FacebookRedirectURI string
	GroqAPIKey          string
	GroqModel           string
	PostgresURI         string
	RedisURI            string
	FrontendURL         string
	R2                  R2
	SecretKey           string
	CookieName          string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:   getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		FacebookAppID:       getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret:   getEnv("FACEBOOK_APP_SECRET", ""),
		FacebookRedirectURI: getEnv("FACEBOOK_REDIRECT_URI", "http://localhost:3000/api/page/connect/callback"),
		GroqAPIKey:          getEnv("GROQ_API_KEY", ""),
		GroqModel:           getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		PostgresURI:         getEnv("POSTGRES_URI", ""),
		RedisURI:            getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "pagepilot_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
