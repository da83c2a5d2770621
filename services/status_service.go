package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/models"
)

// InterfaceStatusService определяет интерфейс сервиса записи статусов
type InterfaceStatusService interface {
	UpdateHouseStatus(idHouse int64, req *StatusUpdateRequest) (*models.HouseStatus, error)
	CreateIncident(idHouse int64, statusIncident, houseHealth string) (*models.HouseStatus, error)
}

// StatusUpdateRequest — частичное обновление статуса дома.
// Отсутствующее поле (nil) не изменяется.
type StatusUpdateRequest struct {
	IncidentStatus *string `json:"incident_status"`
	HouseHealth    *string `json:"house_health"`
}

// StatusService записывает статусы домов и запускает уведомления
type StatusService struct {
	DB       *gorm.DB
	Notifier InterfaceNotificationService
}

// NewStatusService создаёт сервис статусов
func NewStatusService(db *gorm.DB, notifier InterfaceNotificationService) *StatusService {
	return &StatusService{DB: db, Notifier: notifier}
}

// UpdateHouseStatus обновляет существующую строку статуса в одной транзакции.
// Уведомление отправляется после коммита и только если новое состояние
// проблемное и хотя бы одно из отслеживаемых полей изменилось.
func (s *StatusService) UpdateHouseStatus(idHouse int64, req *StatusUpdateRequest) (*models.HouseStatus, error) {
	var old models.HouseStatus
	var updated models.HouseStatus

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_house = ?", idHouse).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHouseNotFound
			}
			return err
		}

		changes := map[string]interface{}{}
		if req.IncidentStatus != nil {
			changes["status_incident"] = *req.IncidentStatus
		}
		if req.HouseHealth != nil {
			changes["house_health"] = *req.HouseHealth
		}
		if len(changes) > 0 {
			if err := tx.Model(&models.HouseStatus{}).
				Where("id_house = ?", idHouse).
				Updates(changes).Error; err != nil {
				return err
			}
		}

		return tx.Where("id_house = ?", idHouse).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if shouldNotify(&old, &updated) {
		s.notify(&updated)
	}
	return &updated, nil
}

// CreateIncident регистрирует инцидент (путь v2): дом обязан существовать в
// реестре, строка статуса создаётся или перезаписывается, unom копируется из
// реестра. Уведомление уходит всегда, когда итоговое здоровье проблемное.
func (s *StatusService) CreateIncident(idHouse int64, statusIncident, houseHealth string) (*models.HouseStatus, error) {
	var house models.LublinoHouse
	if err := s.DB.Where("id_house = ?", idHouse).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}

	status := models.HouseStatus{
		IDHouse:        idHouse,
		Unom:           house.Unom,
		StatusIncident: &statusIncident,
		HouseHealth:    &houseHealth,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.HouseStatus
		err := tx.Where("id_house = ?", idHouse).First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&models.HouseStatus{}).
				Where("id_house = ?", idHouse).
				Updates(map[string]interface{}{
					"unom":            house.Unom,
					"status_incident": statusIncident,
					"house_health":    houseHealth,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&status).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	if models.IsProblemHealth(houseHealth) {
		s.notify(&status)
	}
	return &status, nil
}

// shouldNotify: новое здоровье проблемное и хотя бы одно поле изменилось
func shouldNotify(old, updated *models.HouseStatus) bool {
	if updated.HouseHealth == nil || !models.IsProblemHealth(*updated.HouseHealth) {
		return false
	}
	return !equalPtr(old.HouseHealth, updated.HouseHealth) ||
		!equalPtr(old.StatusIncident, updated.StatusIncident)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *StatusService) notify(status *models.HouseStatus) {
	if s.Notifier == nil {
		return
	}

	// в письме используется полный адрес из реестра
	address := "Адрес не указан"
	var house models.LublinoHouse
	if err := s.DB.Where("id_house = ?", status.IDHouse).First(&house).Error; err == nil {
		address = displayAddress(house.Address, house.SimpleAddress)
	} else {
		config.Warning("адрес дома %d не найден для уведомления: %v", status.IDHouse, err)
	}

	health := ""
	if status.HouseHealth != nil {
		health = *status.HouseHealth
	}
	incident := ""
	if status.StatusIncident != nil {
		incident = *status.StatusIncident
	}
	s.Notifier.SendStatusNotification(status.IDHouse, address, health, incident)
}
