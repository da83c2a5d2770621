package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/models"
)

// InterfaceHouseService определяет интерфейс сервиса домов
type InterfaceHouseService interface {
	ListHouses(regionID string, filter *HouseFilter) ([]HouseListItem, error)
	GetHouseDetail(idHouse int64) (*HouseDetail, error)
	GetHouseStatusDetail(idHouse int64) (*HouseStatusDetail, error)
	ListHouseOptions() []HouseOption
	ListHouseOptionsV2() []HouseOption
}

// HouseFilter — конъюнктивные фильтры списка домов
type HouseFilter struct {
	Status         string // red | yellow | green | in_work
	IncidentStatus string // русская метка статуса инцидента
	Search         string // подстрока адреса
}

// HouseListItem — строка списка домов района
type HouseListItem struct {
	HouseID         int64  `json:"house_id"`
	Address         string `json:"address"`
	Region          string `json:"region"`
	Status          string `json:"status"`
	LastFailureDate string `json:"last_failure_date"`
	IncidentStatus  string `json:"incident_status"`
	Unom            int64  `json:"unom"`
}

// HouseDetail — карточка дома
type HouseDetail struct {
	HouseID        int64   `json:"house_id"`
	Address        string  `json:"address"`
	SimpleAddress  *string `json:"simple_address"`
	Fias           *string `json:"fias"`
	Nreg           *string `json:"nreg"`
	Region         string  `json:"region"`
	Status         string  `json:"status"`
	IncidentStatus string  `json:"incident_status"`
	Unom           int64   `json:"unom"`
}

// HouseStatusDetail — альтернативный срез статуса дома
type HouseStatusDetail struct {
	HouseID          int64   `json:"house_id"`
	Address          string  `json:"address"`
	Status           string  `json:"status"`
	IncidentStatus   string  `json:"incident_status"`
	HouseHealth      *string `json:"house_health"`
	Unom             int64   `json:"unom"`
	Fias             *string `json:"fias"`
	Nreg             *string `json:"nreg"`
	StatusValidUntil *string `json:"status_valid_until"`
	StatusReason     *string `json:"status_reason"`
}

// HouseOption — краткая строка дома для выпадающих списков
type HouseOption struct {
	IDHouse       int64  `json:"id_house"`
	Unom          int64  `json:"unom"`
	SimpleAddress string `json:"simple_address"`
}

// houseRow — проекция соединения статусов с реестром
type houseRow struct {
	IDHouse        int64
	Unom           int64
	StatusIncident *string
	HouseHealth    *string
	SimpleAddress  *string
	Address        *string
	NFias          *string
	Nreg           *string
}

// HouseService выполняет запросы по реестру и статусам домов
type HouseService struct {
	DB *gorm.DB
}

// NewHouseService создаёт сервис домов
func NewHouseService(db *gorm.DB) *HouseService {
	return &HouseService{DB: db}
}

// ListHouses возвращает дома района со статусами. Фильтры объединяются
// по И; пустой результат — это пустой список, а не ошибка.
func (s *HouseService) ListHouses(regionID string, filter *HouseFilter) ([]HouseListItem, error) {
	if !models.KnownRegion(regionID) {
		return nil, ErrRegionNotFound
	}

	q := s.DB.Table("status_houses sh").
		Select("sh.id_house, sh.unom, sh.status_incident, sh.house_health, lhi.simple_address, lhi.address").
		Joins("JOIN lublino_houses_id lhi ON lhi.id_house = sh.id_house")

	if filter != nil {
		switch filter.Status {
		case models.StatusInWork:
			q = q.Where("sh.status_incident IN ?", models.ActiveIncidentStatuses)
		case models.StatusRed:
			q = q.Where("sh.house_health = ?", models.HealthRed)
		case models.StatusYellow:
			q = q.Where("sh.house_health = ?", models.HealthYellow)
		case models.StatusGreen:
			q = q.Where("sh.house_health = ?", models.HealthGreen)
		}
		if filter.IncidentStatus != "" {
			if v := models.IncidentFromDisplayLabel(filter.IncidentStatus); v == nil {
				q = q.Where("sh.status_incident IS NULL")
			} else {
				q = q.Where("sh.status_incident = ?", *v)
			}
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where("lhi.simple_address ILIKE ? OR lhi.address ILIKE ?", pattern, pattern)
		}
	}

	var rows []houseRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]HouseListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, HouseListItem{
			HouseID:         r.IDHouse,
			Address:         displayAddress(r.SimpleAddress, r.Address),
			Region:          models.RegionName(regionID),
			Status:          models.EffectiveStatus(r.HouseHealth, r.StatusIncident),
			LastFailureDate: "",
			IncidentStatus:  models.IncidentDisplayLabel(r.StatusIncident),
			Unom:            r.Unom,
		})
	}
	return items, nil
}

// GetHouseDetail возвращает карточку дома по id_house
func (s *HouseService) GetHouseDetail(idHouse int64) (*HouseDetail, error) {
	var row houseRow
	err := s.DB.Table("status_houses sh").
		Select("sh.id_house, sh.unom, sh.status_incident, sh.house_health, lhi.simple_address, lhi.address, lhi.n_fias, lhi.nreg").
		Joins("JOIN lublino_houses_id lhi ON lhi.id_house = sh.id_house").
		Where("sh.id_house = ?", idHouse).
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.IDHouse == 0 {
		return nil, ErrHouseNotFound
	}

	return &HouseDetail{
		HouseID:        row.IDHouse,
		Address:        displayAddress(row.SimpleAddress, row.Address),
		SimpleAddress:  row.SimpleAddress,
		Fias:           row.NFias,
		Nreg:           row.Nreg,
		Region:         models.RegionName("lublino"),
		Status:         models.EffectiveStatus(row.HouseHealth, row.StatusIncident),
		IncidentStatus: models.IncidentDisplayLabel(row.StatusIncident),
		Unom:           row.Unom,
	}, nil
}

// GetHouseStatusDetail возвращает срез статуса дома из status_houses
func (s *HouseService) GetHouseStatusDetail(idHouse int64) (*HouseStatusDetail, error) {
	var status models.HouseStatus
	if err := s.DB.Where("id_house = ?", idHouse).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseStatusNotFound
		}
		return nil, err
	}

	var house models.LublinoHouse
	address := "Адрес не указан"
	var fias, nreg *string
	if err := s.DB.Where("id_house = ?", idHouse).First(&house).Error; err == nil {
		address = displayAddress(house.SimpleAddress, house.Address)
		fias = house.NFias
		nreg = house.Nreg
	}

	return &HouseStatusDetail{
		HouseID:        status.IDHouse,
		Address:        address,
		Status:         models.EffectiveStatus(status.HouseHealth, status.StatusIncident),
		IncidentStatus: models.IncidentDisplayLabel(status.StatusIncident),
		HouseHealth:    status.HouseHealth,
		Unom:           status.Unom,
		Fias:           fias,
		Nreg:           nreg,
	}, nil
}

// ListHouseOptions возвращает первые 100 домов реестра. При недоступной БД
// деградирует до фиксированной пары строк, чтобы фронтенд оставался рабочим.
func (s *HouseService) ListHouseOptions() []HouseOption {
	var houses []models.LublinoHouse
	if err := s.DB.Limit(100).Find(&houses).Error; err != nil {
		config.Error("не удалось получить список домов: %v", err)
		return fallbackHouseOptions()
	}
	return toHouseOptions(houses)
}

// ListHouseOptionsV2 возвращает все дома реестра, упорядоченные по адресу
func (s *HouseService) ListHouseOptionsV2() []HouseOption {
	var houses []models.LublinoHouse
	if err := s.DB.Order("simple_address, unom").Find(&houses).Error; err != nil {
		config.Error("не удалось получить список домов (v2): %v", err)
		return fallbackHouseOptions()
	}
	return toHouseOptions(houses)
}

func toHouseOptions(houses []models.LublinoHouse) []HouseOption {
	options := make([]HouseOption, 0, len(houses))
	for _, h := range houses {
		label := ""
		if h.SimpleAddress != nil {
			label = *h.SimpleAddress
		} else if h.Address != nil {
			label = *h.Address
		}
		options = append(options, HouseOption{
			IDHouse:       h.IDHouse,
			Unom:          h.Unom,
			SimpleAddress: label,
		})
	}
	return options
}

func fallbackHouseOptions() []HouseOption {
	return []HouseOption{
		{IDHouse: 1, Unom: 12345, SimpleAddress: "ул. Тестовая, д. 1"},
		{IDHouse: 2, Unom: 12346, SimpleAddress: "ул. Тестовая, д. 2"},
	}
}

// displayAddress выбирает короткий адрес, затем полный, затем заглушку
func displayAddress(simple, full *string) string {
	if simple != nil && *simple != "" {
		return *simple
	}
	if full != nil && *full != "" {
		return *full
	}
	return "Адрес не указан"
}
