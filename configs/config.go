package config

import "os"

type Meta struct {
	AccessToken string
	AdAccountID string
	PageID      string
}

type Config struct {
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleRedirectURI    string
	GoogleServiceAccount string
	SpreadsheetID        string
	DefaultSheetName     string
	DriveRootFolderID    string
	NanobananaAPIKey     string
	Meta                 Meta
	RedisURI             string
	FrontendURL          string
	SecretKey            string
	Port                 string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:    getEnv("GOOGLE_REDIRECT_URI", ""),
		GoogleServiceAccount: getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
		SpreadsheetID:        getEnv("GOOGLE_SPREADSHEET_ID", ""),
		DefaultSheetName:     getEnv("DEFAULT_SHEET_NAME", "Calendario Marzo 2026"),
		DriveRootFolderID:    getEnv("DRIVE_ROOT_FOLDER_ID", ""),
		NanobananaAPIKey:     getEnv("NANOBANANA_API_KEY", ""),
		Meta: Meta{
			AccessToken: getEnv("META_ACCESS_TOKEN", ""),
			AdAccountID: getEnv("META_AD_ACCOUNT_ID", ""),
			PageID:      getEnv("META_PAGE_ID", ""),
		},
		RedisURI:    getEnv("REDIS_URI", "127.0.0.1:6379"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		Port:        getEnv("PORT", "3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
