package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	UploadDir     string
	LogFile       string
	StoreName     string
	WhatsAppPhone string
	AdminPIN      string
	AdminPINHash  string
	AdminTokens   []string
	CloudinaryURL string
	PublicBaseURL string
	MaxBodyBytes  int
}

func Load() Config {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "sucree.db"
	} // sqlite file in project root
	uploads := os.Getenv("UPLOAD_DIR")
	if uploads == "" {
		uploads = "./public/uploads"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./sucree.log"
	}
	name := os.Getenv("STORE_NAME")
	if name == "" {
		name = "Maison Sucrée"
	}
	phone := os.Getenv("WHATSAPP_PHONE")
	if phone == "" {
		phone = "5532999846921"
	}
	pin := os.Getenv("ADMIN_PIN")
	pinHash := os.Getenv("ADMIN_PIN_HASH")
	if pin == "" && pinHash == "" {
		pin = "1234"
		log.Printf("[config] ADMIN_PIN not set, using the built-in default PIN")
	}
	maxBody := 10 << 20
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxBody = n
		}
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		UploadDir:     uploads,
		LogFile:       logFile,
		StoreName:     name,
		WhatsAppPhone: phone,
		AdminPIN:      pin,
		AdminPINHash:  pinHash,
		AdminTokens:   splitList(os.Getenv("ADMIN_TOKENS")),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		MaxBodyBytes:  maxBody,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s LOG_FILE=%s STORE_NAME=%q cloudinary=%t",
		cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.LogFile, cfg.StoreName, cfg.CloudinaryURL != "")
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
