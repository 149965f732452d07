package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	DatabaseName  string
	Origin        string
	JWTSecret     string
	CloudinaryURL string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	Timeout       time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:  getEnv("DATABASE_NAME", "oddlogy"),
		Origin:        getEnv("ORIGIN", "http://localhost:3000"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", "no-reply@oddlogy.com"),
		Timeout:       10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
