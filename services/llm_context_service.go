package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/models"
	"github.com/Vdyuk/forecast-MVC/utils"
)

// Длина истории инцидентов дома для контекста LLM, часов
const houseIncidentHoursBack = 720

// Число случайных домов для региональных прогнозов
const regionalForecastHouses = 5

// InterfaceLLMContextService определяет интерфейс сборки контекста для LLM
type InterfaceLLMContextService interface {
	BuildHouseContext(house *HouseDetail) string
	BuildRegionContext(regionID string) string
	RegionProblemContext(regionID string) (*RegionProblemContext, error)
}

// RegionProblemContext — проблемные дома района для эндпоинта llm-context
type RegionProblemContext struct {
	Region             string   `json:"region"`
	TotalProblemHouses int      `json:"total_problem_houses"`
	Houses             []string `json:"houses"`
}

// LLMContextService собирает текстовый контекст из телеметрии и статусов.
// Все запросы деградируют до пустых наборов с записью в лог: частично
// собранный контекст полезнее, чем ошибка вместо ответа.
type LLMContextService struct {
	DB *gorm.DB
}

// NewLLMContextService создаёт сервис контекста
func NewLLMContextService(db *gorm.DB) *LLMContextService {
	return &LLMContextService{DB: db}
}

type waterRow struct {
	TimeStr   string   `gorm:"column:time_str"`
	WaterCold *float64 `gorm:"column:water_cold"`
	WaterHot  *float64 `gorm:"column:water_hot"`
}

type diffrRow struct {
	TimeStr    string   `gorm:"column:time_str"`
	DiffrRatio *float64 `gorm:"column:diffr_ratio"`
}

type forecastRow struct {
	TimeStr string  `gorm:"column:time_str"`
	Yhat    float64 `gorm:"column:yhat"`
}

type houseIncidentRow struct {
	TimeStr       string   `gorm:"column:time_str"`
	TypeIncdnt    int      `gorm:"column:type_incdnt"`
	ChangePercent *float64 `gorm:"column:change_1h_percent"`
	Comment       *string  `gorm:"column:comment"`
}

type regionalIncidentRow struct {
	Address       *string  `gorm:"column:simple_address"`
	TimeStr       string   `gorm:"column:time_str"`
	TypeIncdnt    int      `gorm:"column:type_incdnt"`
	ChangePercent *float64 `gorm:"column:change_1h_percent"`
	Comment       *string  `gorm:"column:comment_incdnt"`
}

type regionalForecastRow struct {
	Address *string `gorm:"column:simple_address"`
	TimeStr string  `gorm:"column:time_str"`
	Yhat    float64 `gorm:"column:yhat"`
}

// BuildHouseContext собирает контекст по одному дому: карточка, расход,
// отклонения, прогноз ХВС и история инцидентов за последний месяц
func (s *LLMContextService) BuildHouseContext(house *HouseDetail) string {
	consumption := s.consumptionRows(house.HouseID)
	diffr := s.diffrRows(house.HouseID)
	forecast := s.forecastRows(house.HouseID)
	incidents := s.houseIncidentRows(house.HouseID, houseIncidentHoursBack)

	return fmt.Sprintf(`Дом: %s
Статус: %s
Инцидент: %s
УНОМ: %d
Последние данные по расходу воды (1-час интервал):
%s
Последние данные по отклонениям (1-час интервал):
%s
Прогнозные данные по расходу ХВС (на ближайшие 24 часов, 1-час интервал):
%s
История инцидентов (последний месяц):
%s
`,
		house.Address,
		house.Status,
		house.IncidentStatus,
		house.Unom,
		formatWaterRows(consumption),
		formatDiffrRows(diffr),
		formatForecastRows(forecast),
		formatHouseIncidents(incidents),
	)
}

// BuildRegionContext собирает региональный контекст: сводка статусов,
// топ-10 инцидентов за 24 часа и прогноз ХВС по случайным домам
func (s *LLMContextService) BuildRegionContext(regionID string) string {
	total := s.countHouses()
	red := s.countByHealth(models.HealthRed)
	yellow := s.countByHealth(models.HealthYellow)
	green := s.countByHealth(models.HealthGreen)
	inWork := s.countInWork()

	incidents, incidentSummary := s.regionalIncidents(24)
	forecasts, forecastSummary := s.regionalForecasts(regionalForecastHouses)
	problemHouses := s.problemHouseLines()

	problemBlock := "Нет домов с проблемами"
	if len(problemHouses) > 0 {
		problemBlock = strings.Join(problemHouses, "\n")
	}

	return fmt.Sprintf(`Район: %s
Всего домов: %d
Статусы домов:
- 🔴 Критические инциденты (Red): %d
- 🟡 Предупреждения (Yellow): %d
- 🟢 В норме (Green): %d
- 🛠️ В работе (инциденты): %d
Статистика инцидентов за последние 24 часа: %s
Названия статусов нужно возвращать на русском Repair - В ремонте, New - Новый, Resolved - Решен. Work - В работе. None - Статус не задан.
ТОП-10 последних инцидентов и предупреждений (последние 24 часа):
%s
Прогнозные данные ХВС (на ближайшие 24 часа, 1-час интервал): %s
Примеры прогнозов (первые 20):
%s
Дома с проблемами (примеры):
%s`,
		models.RegionName(regionID),
		total,
		red, yellow, green, inWork,
		incidentSummary,
		formatRegionalIncidents(incidents),
		forecastSummary,
		formatRegionalForecasts(forecasts),
		problemBlock,
	)
}

// RegionProblemContext возвращает список проблемных домов района
func (s *LLMContextService) RegionProblemContext(regionID string) (*RegionProblemContext, error) {
	if !models.KnownRegion(regionID) {
		return nil, ErrRegionNotFound
	}

	var rows []houseRow
	err := s.DB.Table("status_houses sh").
		Select("sh.id_house, sh.unom, sh.status_incident, sh.house_health, lhi.simple_address, lhi.address").
		Joins("JOIN lublino_houses_id lhi ON lhi.id_house = sh.id_house").
		Where("sh.house_health IN ? OR sh.status_incident IS NOT NULL", models.ProblemHealthStatuses).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	houses := make([]string, 0, len(rows))
	for _, r := range rows {
		houses = append(houses, fmt.Sprintf("%s - %s (%s)",
			displayAddress(r.SimpleAddress, r.Address),
			problemStatusText(r.HouseHealth),
			incidentText(r.StatusIncident)))
	}

	total := len(houses)
	if len(houses) > 100 {
		houses = houses[:100]
	}
	return &RegionProblemContext{
		Region:             models.RegionName(regionID),
		TotalProblemHouses: total,
		Houses:             houses,
	}, nil
}

func (s *LLMContextService) consumptionRows(idHouse int64) []waterRow {
	var rows []waterRow
	err := s.DB.Raw(`
		SELECT to_char(time_1hour, 'DD/MM HH24:MI') AS time_str, water_cold, water_hot
		FROM water_consump_hot_1h
		WHERE id_house = ?
		ORDER BY time_1hour DESC
		LIMIT 24`, idHouse).Scan(&rows).Error
	if err != nil {
		config.Error("расход воды по дому %d: %v", idHouse, err)
		return nil
	}
	return rows
}

func (s *LLMContextService) diffrRows(idHouse int64) []diffrRow {
	var rows []diffrRow
	err := s.DB.Raw(`
		SELECT to_char(time_1hour, 'DD/MM HH24:MI') AS time_str, diffr_ratio
		FROM water_diffr_coldhot_1h
		WHERE id_house = ?
		ORDER BY time_1hour DESC
		LIMIT 24`, idHouse).Scan(&rows).Error
	if err != nil {
		config.Error("отклонения по дому %d: %v", idHouse, err)
		return nil
	}
	return rows
}

func (s *LLMContextService) forecastRows(idHouse int64) []forecastRow {
	var rows []forecastRow
	err := s.DB.Raw(`
		SELECT to_char(ds, 'DD/MM HH24:MI') AS time_str, yhat
		FROM water_forecast_all
		WHERE id_house = ?
		  AND ds >= now() AT TIME ZONE 'UTC'
		  AND ds < now() AT TIME ZONE 'UTC' + INTERVAL '1 day'
		  AND EXTRACT(MINUTE FROM ds AT TIME ZONE 'UTC') = 0
		ORDER BY ds ASC`, idHouse).Scan(&rows).Error
	if err != nil {
		config.Error("прогноз ХВС по дому %d: %v", idHouse, err)
		return nil
	}
	return rows
}

func (s *LLMContextService) houseIncidentRows(idHouse int64, hoursBack int) []houseIncidentRow {
	var rows []houseIncidentRow
	err := s.DB.Raw(`
		SELECT
		  to_char(time_5min, 'DD/MM HH24:MI') AS time_str,
		  type_incdnt,
		  diffr_prcnt_1h AS change_1h_percent,
		  comment_incdnt AS comment
		FROM incident_hist_2
		WHERE id_house = ?
		  AND time_5min >= now() - ? * interval '1 hour'
		  AND time_5min <= now()
		  AND type_incdnt IN (?, ?)
		ORDER BY time_5min DESC`,
		idHouse, hoursBack, models.IncidentTypeIncident, models.IncidentTypeWarning).Scan(&rows).Error
	if err != nil {
		config.Error("история инцидентов дома %d: %v", idHouse, err)
		return nil
	}
	return rows
}

// regionalIncidents возвращает топ-10 событий района за hoursBack часов и
// сводную строку по ним
func (s *LLMContextService) regionalIncidents(hoursBack int) ([]regionalIncidentRow, string) {
	var rows []regionalIncidentRow
	err := s.DB.Raw(`
		SELECT
		  lhi.simple_address,
		  to_char(ih.time_5min, 'DD/MM HH24:MI') AS time_str,
		  ih.diffr_prcnt_1h AS change_1h_percent,
		  ih.type_incdnt,
		  ih.comment_incdnt
		FROM incident_hist_2 ih
		JOIN lublino_houses_id lhi ON ih.id_house = lhi.id_house
		WHERE ih.time_5min >= now() - ? * interval '1 hour'
		  AND ih.time_5min <= now()
		  AND ih.type_incdnt IN (?, ?)
		ORDER BY ih.time_5min DESC
		LIMIT 10`,
		hoursBack, models.IncidentTypeIncident, models.IncidentTypeWarning).Scan(&rows).Error
	if err != nil {
		config.Error("региональные инциденты: %v", err)
		return nil, fmt.Sprintf("Ошибка получения статистики инцидентов за последние %d ч.", hoursBack)
	}

	incidents, warnings := 0, 0
	latest := "Нет данных"
	for i, r := range rows {
		switch r.TypeIncdnt {
		case models.IncidentTypeIncident:
			incidents++
		case models.IncidentTypeWarning:
			warnings++
		}
		if i == 0 && r.TimeStr != "" {
			latest = r.TimeStr
		}
	}

	summary := fmt.Sprintf(
		"Всего инцидентов и предупреждений за последние %d ч: %d. Инциденты (1): %d, Предупреждения (3): %d. Последний инцидент/предупреждение: %s.",
		hoursBack, len(rows), incidents, warnings, latest)
	return rows, summary
}

// regionalForecasts выбирает numHouses случайных домов и возвращает их
// почасовой прогноз ХВС на ближайшие сутки
func (s *LLMContextService) regionalForecasts(numHouses int) ([]regionalForecastRow, string) {
	var ids []int64
	if err := s.DB.Raw(`SELECT id_house FROM lublino_houses_id`).Scan(&ids).Error; err != nil {
		config.Error("список домов для прогноза: %v", err)
		return nil, fmt.Sprintf("Ошибка получения прогнозных данных ХВС для рандомных домов: %v", err)
	}
	if len(ids) == 0 {
		return nil, "Нет домов для получения прогноза."
	}

	selected := utils.SampleInt64(ids, numHouses)
	return s.forecastsForHouses(selected)
}

func (s *LLMContextService) forecastsForHouses(ids []int64) ([]regionalForecastRow, string) {
	var rows []regionalForecastRow
	err := s.DB.Raw(`
		SELECT
		  lhi.simple_address,
		  to_char(wf.ds, 'DD/MM HH24:MI') AS time_str,
		  wf.yhat
		FROM water_forecast_all wf
		JOIN lublino_houses_id lhi ON wf.id_house = lhi.id_house
		WHERE lhi.id_house IN ?
		  AND wf.ds >= now() AT TIME ZONE 'UTC'
		  AND wf.ds < now() AT TIME ZONE 'UTC' + INTERVAL '1 day'
		  AND EXTRACT(MINUTE FROM wf.ds AT TIME ZONE 'UTC') = 0
		ORDER BY wf.ds ASC, lhi.simple_address ASC`, ids).Scan(&rows).Error
	if err != nil {
		config.Error("региональный прогноз ХВС: %v", err)
		return nil, fmt.Sprintf("Ошибка получения прогнозных данных ХВС для рандомных домов: %v", err)
	}

	minTime, maxTime := "", ""
	if len(rows) > 0 {
		minTime = rows[0].TimeStr
		maxTime = rows[len(rows)-1].TimeStr
	}
	summary := fmt.Sprintf(
		"Всего прогнозов ХВС для %d рандомных домов на ближайшие 24 ч (1-час интервал): %d. Прогноз с %s до %s.",
		len(ids), len(rows), minTime, maxTime)
	return rows, summary
}

func (s *LLMContextService) countHouses() int64 {
	var n int64
	if err := s.DB.Model(&models.LublinoHouse{}).Count(&n).Error; err != nil {
		config.Error("подсчёт домов: %v", err)
	}
	return n
}

func (s *LLMContextService) countByHealth(health string) int64 {
	var n int64
	if err := s.DB.Model(&models.HouseStatus{}).
		Where("house_health = ?", health).Count(&n).Error; err != nil {
		config.Error("подсчёт по здоровью %s: %v", health, err)
	}
	return n
}

func (s *LLMContextService) countInWork() int64 {
	var n int64
	if err := s.DB.Model(&models.HouseStatus{}).
		Where("status_incident IN ?", models.ActiveIncidentStatuses).Count(&n).Error; err != nil {
		config.Error("подсчёт домов в работе: %v", err)
	}
	return n
}

// problemHouseLines возвращает до 100 строк вида
// «адрес (УНОМ: x) — статус, инцидент: стадия»
func (s *LLMContextService) problemHouseLines() []string {
	var rows []houseRow
	err := s.DB.Table("status_houses sh").
		Select("sh.id_house, sh.unom, sh.status_incident, sh.house_health, lhi.simple_address, lhi.address").
		Joins("JOIN lublino_houses_id lhi ON lhi.id_house = sh.id_house").
		Where("sh.house_health IN ? OR sh.status_incident IN ?",
			models.ProblemHealthStatuses, models.ActiveIncidentStatuses).
		Scan(&rows).Error
	if err != nil {
		config.Error("проблемные дома: %v", err)
		return nil
	}

	if len(rows) > 100 {
		rows = rows[:100]
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		statusText := "Предупреждение"
		if r.HouseHealth != nil && *r.HouseHealth == models.HealthRed {
			statusText = "Критический инцидент"
		}
		addr := "Адрес неизвестен"
		if r.SimpleAddress != nil && *r.SimpleAddress != "" {
			addr = *r.SimpleAddress
		} else if r.Address != nil && *r.Address != "" {
			addr = *r.Address
		}
		lines = append(lines, fmt.Sprintf("%s (УНОМ: %d) — %s, инцидент: %s",
			addr, r.Unom, statusText, incidentText(r.StatusIncident)))
	}
	return lines
}

func problemStatusText(health *string) string {
	if health == nil {
		return "Норма"
	}
	switch *health {
	case models.HealthRed:
		return "Критический инцидент"
	case models.HealthYellow:
		return "Предупреждение"
	default:
		return "Норма"
	}
}

func incidentText(statusIncident *string) string {
	if statusIncident == nil || *statusIncident == "" {
		return models.IncidentLabelUnset
	}
	return *statusIncident
}

// Форматтеры контекста. Чистые функции, принимают уже выбранные строки.

func formatWaterRows(rows []waterRow) string {
	if len(rows) == 0 {
		return "Нет данных"
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		parts := []string{}
		if r.WaterCold != nil {
			parts = append(parts, fmt.Sprintf("water_cold: %v", *r.WaterCold))
		}
		if r.WaterHot != nil {
			parts = append(parts, fmt.Sprintf("water_hot: %v", *r.WaterHot))
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", r.TimeStr, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}

func formatDiffrRows(rows []diffrRow) string {
	if len(rows) == 0 {
		return "Нет данных"
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		value := ""
		if r.DiffrRatio != nil {
			value = fmt.Sprintf("diffr_ratio: %v", *r.DiffrRatio)
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", r.TimeStr, value))
	}
	return strings.Join(lines, "\n")
}

func formatForecastRows(rows []forecastRow) string {
	if len(rows) == 0 {
		return "Нет данных"
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s: forecast_cold_water_value: %v, (прогноз)", r.TimeStr, r.Yhat))
	}
	return strings.Join(lines, "\n")
}

func formatHouseIncidents(rows []houseIncidentRow) string {
	if len(rows) == 0 {
		return "Нет данных об инцидентах за последние 24 часа."
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		change := "N/A"
		if r.ChangePercent != nil {
			change = fmt.Sprintf("%.2f%%", *r.ChangePercent)
		}
		comment := "Комментарий отсутствует"
		if r.Comment != nil && *r.Comment != "" {
			comment = *r.Comment
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (Изменение: %s) - %s",
			r.TimeStr, models.IncidentTypeLabel(r.TypeIncdnt), change, comment))
	}
	return strings.Join(lines, "\n")
}

func formatRegionalIncidents(rows []regionalIncidentRow) string {
	if len(rows) == 0 {
		return "Нет данных о последних инцидентах или предупреждениях за последние 24 часа."
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		addr := "Адрес не указан"
		if r.Address != nil && *r.Address != "" {
			addr = *r.Address
		}
		comment := "Комментарий отсутствует"
		if r.Comment != nil && *r.Comment != "" {
			comment = *r.Comment
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s - %s",
			addr, r.TimeStr, models.IncidentTypeLabel(r.TypeIncdnt), comment))
	}
	return strings.Join(lines, "\n")
}

func formatRegionalForecasts(rows []regionalForecastRow) string {
	if len(rows) == 0 {
		return "Нет прогнозных данных по ХВС для выбранных рандомных домов на ближайшие 24 часа (1-час интервал)."
	}
	if len(rows) > 20 {
		rows = rows[:20]
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		addr := "Адрес не указан"
		if r.Address != nil && *r.Address != "" {
			addr = *r.Address
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %v (прогноз)", addr, r.TimeStr, r.Yhat))
	}
	return strings.Join(lines, "\n")
}
