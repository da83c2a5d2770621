package models

import "strings"

// Единый модуль соответствий статусов. Все пути чтения и записи обязаны
// использовать его — дублирование таблиц соответствий по обработчикам
// приводит к расхождению отображаемых статусов.

// Значения house_health в БД.
const (
	HealthRed    = "Red"
	HealthYellow = "Yellow"
	HealthGreen  = "Green"
)

// Значения status_incident в БД.
const (
	IncidentNew      = "New"
	IncidentWork     = "Work"
	IncidentRepair   = "Repair"
	IncidentResolved = "Resolved"
)

// Статусы для API (цвет дома на дашборде).
const (
	StatusRed    = "red"
	StatusYellow = "yellow"
	StatusGreen  = "green"
	StatusInWork = "in_work"
)

// IncidentLabelUnset — отображаемая метка отсутствующего статуса инцидента
const IncidentLabelUnset = "Статус не задан"

// ActiveIncidentStatuses — стадии, при которых дом считается «в работе»
var ActiveIncidentStatuses = []string{IncidentNew, IncidentWork, IncidentRepair}

// ProcessingIncidentStatuses — стадии, при которых инцидент обрабатывается
var ProcessingIncidentStatuses = []string{IncidentWork, IncidentRepair}

// ProblemHealthStatuses — проблемные значения house_health
var ProblemHealthStatuses = []string{HealthRed, HealthYellow}

var healthToAPI = map[string]string{
	HealthRed:    StatusRed,
	HealthYellow: StatusYellow,
	HealthGreen:  StatusGreen,
}

var incidentToLabel = map[string]string{
	IncidentNew:      "Новый",
	IncidentWork:     "В работе",
	IncidentRepair:   "В ремонте",
	IncidentResolved: "Решен",
}

var labelToIncident = map[string]string{
	"Новый":     IncidentNew,
	"В работе":  IncidentWork,
	"В ремонте": IncidentRepair,
	"Решен":     IncidentResolved,
}

var healthToDisplay = map[string]string{
	StatusRed:    "Критический",
	StatusYellow: "Проблемный",
	StatusGreen:  "В норме",
}

// HasActiveIncident сообщает, находится ли инцидент в активной стадии
func HasActiveIncident(statusIncident *string) bool {
	if statusIncident == nil {
		return false
	}
	for _, s := range ActiveIncidentStatuses {
		if *statusIncident == s {
			return true
		}
	}
	return false
}

// EffectiveStatus вычисляет отображаемый статус дома: при активном
// инциденте всегда in_work, иначе цвет из house_health (по умолчанию green)
func EffectiveStatus(houseHealth, statusIncident *string) string {
	if HasActiveIncident(statusIncident) {
		return StatusInWork
	}
	return HealthAPIValue(houseHealth)
}

// HealthAPIValue переводит значение house_health в цвет для API
func HealthAPIValue(houseHealth *string) string {
	if houseHealth == nil {
		return StatusGreen
	}
	if v, ok := healthToAPI[*houseHealth]; ok {
		return v
	}
	return StatusGreen
}

// IsProblemHealth сообщает, требует ли значение здоровья уведомления.
// Сравнение регистронезависимое: пишущие клиенты присылают и "Red", и "red".
func IsProblemHealth(health string) bool {
	switch strings.ToLower(health) {
	case StatusRed, StatusYellow:
		return true
	}
	return false
}

// IncidentDisplayLabel возвращает русскую метку статуса инцидента
func IncidentDisplayLabel(statusIncident *string) string {
	if statusIncident == nil {
		return IncidentLabelUnset
	}
	if label, ok := incidentToLabel[*statusIncident]; ok {
		return label
	}
	return *statusIncident
}

// IncidentFromDisplayLabel — обратное соответствие: метка из фильтра
// списка домов во внутреннее значение. Для метки «Статус не задан»
// возвращает nil (строки без статуса); неизвестная метка проходит как есть.
func IncidentFromDisplayLabel(label string) *string {
	if label == IncidentLabelUnset {
		return nil
	}
	if v, ok := labelToIncident[label]; ok {
		return &v
	}
	return &label
}

// HealthDisplayLabel возвращает русскую метку цвета для уведомлений
func HealthDisplayLabel(health string) string {
	if label, ok := healthToDisplay[strings.ToLower(health)]; ok {
		return label
	}
	return health
}
