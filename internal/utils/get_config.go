package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT key
	JWTSecret string `yaml:"JWT_SECRET"`

	// Server
	AppURL     string `yaml:"APP_URL"`
	ServerPort string `yaml:"SERVER_PORT"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("config.yaml not found, relying on environment: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig resolves a key from config.yaml, falling back to the
// environment so tests and containers can run without a config file.
func GetConfig(key string) string {
	values := map[string]string{
		"DB_USER":            config.DBUser,
		"DB_NAME":            config.DBName,
		"DB_PASSWORD":        config.DBPassword,
		"DB_PORT":            config.DBPort,
		"DB_HOST":            config.DBHost,
		"JWT_SECRET":         config.JWTSecret,
		"APP_URL":            config.AppURL,
		"SERVER_PORT":        config.ServerPort,
		"SMTP_HOST":          config.SMTPHost,
		"SMTP_PORT":          config.SMTPPort,
		"SMTP_SENDER_NAME":   config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": config.SMTPAuthPassword,
		"AWS_S3_BUCKET":      config.AWSS3Bucket,
		"AWS_S3_REGION":      config.AWSS3Region,
		"AWS_ACCESS_KEY":     config.AWSAccessKey,
		"AWS_SECRET_KEY":     config.AWSSecretKey,
	}

	if v, ok := values[key]; ok && v != "" {
		return v
	}
	return os.Getenv(key)
}
