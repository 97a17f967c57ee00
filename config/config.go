package config

import (
	"os"
	"strconv"
)

// Config holds everything read from the environment at boot.
type Config struct {
	Port string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr string
	RedisPass string

	KafkaBroker string

	JWTSecret string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	ElasticURL string

	InstitutionName    string
	InstitutionAddress string
	BankName           string
	BankAccount        string
	BankIFSC           string
	BankBranch         string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "feeportal"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),

		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "fees@university.edu"),

		ElasticURL: getEnv("ELASTIC_URL", "http://localhost:9200"),

		InstitutionName:    getEnv("INSTITUTION_NAME", "National Institute of Technology"),
		InstitutionAddress: getEnv("INSTITUTION_ADDRESS", "University Road, Warangal, Telangana 506004"),
		BankName:           getEnv("BANK_NAME", "State Bank of India"),
		BankAccount:        getEnv("BANK_ACCOUNT", "38010012345"),
		BankIFSC:           getEnv("BANK_IFSC", "SBIN0020149"),
		BankBranch:         getEnv("BANK_BRANCH", "University Campus Branch"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
