package config

import (
	"fmt"
	"os"
)

// Storage mode selects the backend at startup; business logic never
// branches on it.
const (
	ModeDatabase = "database"
	ModeFile     = "file"
	ModeCloud    = "cloud"
)

type Config struct {
	StorageMode string

	// database mode
	Host     string
	Port     string
	DBname   string
	Username string
	Password string

	// file/cloud modes
	DataDir          string
	CloudName        string
	CloudinaryKey    string
	CloudinarySecret string
	CloudPrefix      string

	NeoDoveURL string
}

func (c Config) Dsn() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.DBname,
		c.Port,
	)
}

func New() *Config {
	return &Config{
		StorageMode: getEnv("STORAGE_MODE", ModeFile),

		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		DBname:   os.Getenv("DB_NAME"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),

		DataDir:          getEnv("DATA_DIR", "data"),
		CloudName:        os.Getenv("CLOUD_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET"),
		CloudPrefix:      getEnv("CLOUD_PREFIX", "axelguard"),

		NeoDoveURL: os.Getenv("NEODOVE_URL"),
	}
}

func (c Config) ServerPort() string {
	return getEnv("SERVER_PORT", "8080")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
