package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI          string
	DBName            string
	Port              string
	JWTSecret         string
	SendGridAPIKey    string
	MailFromName      string
	MailFromAddress   string
	ImageHostURL      string
	ImageUploadPreset string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "aggro"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	JWTSecret = os.Getenv("JWT_SECRET")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")

	MailFromName = os.Getenv("MAIL_FROM_NAME")
	if MailFromName == "" {
		MailFromName = "AGGRO Admin"
	}
	MailFromAddress = os.Getenv("MAIL_FROM_ADDRESS")
	if MailFromAddress == "" {
		MailFromAddress = "no-reply@aggroplatform.com"
	}

	ImageHostURL = os.Getenv("IMAGE_HOST_URL")
	if ImageHostURL == "" {
		ImageHostURL = "https://api.cloudinary.com/v1_1/aggro/image/upload"
	}

	ImageUploadPreset = os.Getenv("IMAGE_UPLOAD_PRESET")
	if ImageUploadPreset == "" {
		ImageUploadPreset = "aggro_admin_uploads"
	}
}
