package services

import (
	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/models"
)

// InterfaceDashboardService определяет интерфейс сервиса дашборда
type InterfaceDashboardService interface {
	GetMetrics(regionID string, days int) (*DashboardMetrics, error)
}

// DashboardMetrics — агрегированные счётчики состояния района
type DashboardMetrics struct {
	RegionID   string         `json:"region_id"`
	RegionName string         `json:"region_name"`
	Counts     map[string]int `json:"counts"`
	PeriodDays int            `json:"period_days"`
}

// DashboardService считает метрики дашборда по таблице статусов
type DashboardService struct {
	DB *gorm.DB
}

// NewDashboardService создаёт сервис дашборда
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// GetMetrics возвращает счётчики домов района по состояниям. Параметр days
// принимается и возвращается в ответе, но счётчики считаются по текущему
// срезу status_houses — исторических срезов в схеме нет.
func (s *DashboardService) GetMetrics(regionID string, days int) (*DashboardMetrics, error) {
	if !models.KnownRegion(regionID) {
		return nil, ErrRegionNotFound
	}

	counts := map[string]int{
		models.StatusRed:    0,
		models.StatusYellow: 0,
		models.StatusGreen:  0,
		models.StatusInWork: 0,
	}

	var n int64
	if err := s.DB.Model(&models.HouseStatus{}).
		Where("house_health = ?", models.HealthRed).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[models.StatusRed] = int(n)

	if err := s.DB.Model(&models.HouseStatus{}).
		Where("house_health = ?", models.HealthYellow).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[models.StatusYellow] = int(n)

	if err := s.DB.Model(&models.HouseStatus{}).
		Where("house_health = ?", models.HealthGreen).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[models.StatusGreen] = int(n)

	if err := s.DB.Model(&models.HouseStatus{}).
		Where("status_incident IN ?", models.ActiveIncidentStatuses).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[models.StatusInWork] = int(n)

	if err := s.DB.Model(&models.HouseStatus{}).
		Where("house_health IN ?", models.ProblemHealthStatuses).Count(&n).Error; err != nil {
		return nil, err
	}
	counts["total_current_failures"] = int(n)

	if err := s.DB.Model(&models.HouseStatus{}).
		Where("status_incident IN ?", models.ProcessingIncidentStatuses).Count(&n).Error; err != nil {
		return nil, err
	}
	counts["processed_current"] = int(n)

	return &DashboardMetrics{
		RegionID:   regionID,
		RegionName: models.RegionName(regionID),
		Counts:     counts,
		PeriodDays: days,
	}, nil
}
