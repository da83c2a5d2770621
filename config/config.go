package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config хранит всю конфигурацию приложения. Объект собирается один раз
// на старте и передаётся в контейнер сервисов — бизнес-логика не читает
// переменные окружения напрямую.
type Config struct {
	// Тип окружения
	EnvType string

	// База данных (PostgreSQL)
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// Сервер
	ServerPort string

	// Почтовые уведомления
	SMTPServer         string
	SMTPPort           int
	EmailUser          string
	EmailPassword      string
	NotificationEmails []string

	// LLM (OpenRouter)
	OpenRouterAPIKey string
}

// LoadConfig загружает конфигурацию из переменных окружения с учётом ENV_TYPE
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: неизвестный ENV_TYPE '%s', используется LOCAL\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return &Config{
		EnvType: envType,

		// База данных: сначала переменные окружения с префиксом, затем общие
		DBHost:     getEnv(prefix+"DB_HOST", getEnv("DB_HOST", "localhost")),
		DBUser:     getEnv(prefix+"DB_USER", getEnv("DB_USER", "postgres")),
		DBPassword: getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", "postgres")),
		DBName:     getEnv(prefix+"DB_NAME", getEnv("DB_NAME", "gvs_monitoring")),
		DBPort:     getEnv(prefix+"DB_PORT", getEnv("DB_PORT", "5432")),
		DBSSLMode:  getEnv(prefix+"DB_SSLMODE", getEnv("DB_SSLMODE", "disable")),

		ServerPort: getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8000")),

		// Почта: при отсутствии учётных данных уведомления отключаются,
		// сервис продолжает работать
		SMTPServer:         getEnv("SMTP_SERVER", "smtp.mail.ru"),
		SMTPPort:           smtpPort,
		EmailUser:          getEnv("EMAIL_USER", ""),
		EmailPassword:      getEnv("EMAIL_PASSWORD", ""),
		NotificationEmails: splitEmails(getEnv("NOTIFICATION_EMAILS", "")),

		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
	}
}

// GetConfig возвращает конфигурацию приложения как синглтон
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN возвращает строку подключения к PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// MailConfigured сообщает, заданы ли учётные данные и получатели для почты
func (c *Config) MailConfigured() bool {
	return c.EmailUser != "" && c.EmailPassword != "" && len(c.NotificationEmails) > 0
}

// splitEmails разбирает список получателей, разделённый запятыми
func splitEmails(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		if e := strings.TrimSpace(part); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// Вспомогательная функция получения переменной окружения со значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
