package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	// Логгеры разных уровней. До вызова SetupLogger пишут только в stdout,
	// чтобы сервисы можно было использовать в тестах без инициализации.
	InfoLogger    = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger   = log.New(os.Stdout, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// SetupLogger инициализирует файловый вывод логов
func SetupLogger() error {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("создание директории логов не удалось: %v", err)
	}

	// Имя файла с текущей датой
	currentTime := time.Now()
	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", currentTime.Format("2006-01-02")))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("открытие файла логов не удалось: %v", err)
	}

	// Одновременный вывод в консоль и файл
	multiWriter := io.MultiWriter(os.Stdout, logFile)

	InfoLogger = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(multiWriter, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Info записывает информационное сообщение
func Info(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// Warning записывает предупреждение
func Warning(format string, v ...interface{}) {
	WarningLogger.Printf(format, v...)
}

// Error записывает сообщение об ошибке
func Error(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}
