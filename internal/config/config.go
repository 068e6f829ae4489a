package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	UploadsDir  string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Azure Speech configuration
	SpeechKey    string
	SpeechRegion string
	SpeechVoice  string

	// SMTP configuration for bulk mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	// Scoring pipeline
	MaxWorkers         int
	ShortlistThreshold int

	// Interview
	InterviewMaxDuration time.Duration
	InterviewLink        string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file, using environment variables")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash" // default model
	}

	voice := os.Getenv("AZURE_SPEECH_VOICE")
	if voice == "" {
		voice = "en-US-AriaNeural"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
		UploadsDir:  uploadsDir,

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  model,

		SpeechKey:    os.Getenv("AZURE_SPEECH_API_KEY"),
		SpeechRegion: os.Getenv("AZURE_SPEECH_REGION"),
		SpeechVoice:  voice,

		SMTPHost:     smtpHost,
		SMTPPort:     intEnv("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		MaxWorkers:         intEnv("MAX_WORKERS", 8),
		ShortlistThreshold: intEnv("SHORTLIST_THRESHOLD", 60),

		InterviewMaxDuration: durationEnv("INTERVIEW_MAX_DURATION", 8*time.Minute),
		InterviewLink:        os.Getenv("INTERVIEW_LINK"),
	}
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return v
}
