package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/models"
)

// InterfaceRelearnService определяет интерфейс сервиса переобучения моделей
type InterfaceRelearnService interface {
	GetHistory() []models.ModelRelearn
	StartRelearn(modelName string) (*models.ModelRelearn, error)
	GetForecastOverall() (*models.ForecastOverall, error)
}

// RelearnService ведёт журнал переобучения прогнозных моделей
type RelearnService struct {
	DB *gorm.DB
}

// NewRelearnService создаёт сервис переобучения
func NewRelearnService(db *gorm.DB) *RelearnService {
	return &RelearnService{DB: db}
}

// GetHistory возвращает журнал запусков от новых к старым.
// При ошибке запроса возвращает пустой список.
func (s *RelearnService) GetHistory() []models.ModelRelearn {
	var history []models.ModelRelearn
	if err := s.DB.Order("date_relearn DESC").Find(&history).Error; err != nil {
		config.Error("история переобучения: %v", err)
		return []models.ModelRelearn{}
	}
	return history
}

// StartRelearn регистрирует запуск переобучения. Само переобучение
// выполняет внешний конвейер; здесь только запись в журнал.
func (s *RelearnService) StartRelearn(modelName string) (*models.ModelRelearn, error) {
	if modelName == "" {
		modelName = fmt.Sprintf("model_%d", time.Now().Unix())
	}
	entry := models.ModelRelearn{
		DateRelearn:   time.Now(),
		ModelName:     modelName,
		StatusRelearn: "started",
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetForecastOverall возвращает агрегированный прогноз по району.
// Пустая таблица — это нули, а не ошибка.
func (s *RelearnService) GetForecastOverall() (*models.ForecastOverall, error) {
	var rows []models.ForecastOverall
	if err := s.DB.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.ForecastOverall{}, nil
	}
	return &rows[0], nil
}
