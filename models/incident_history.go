package models

import "time"

// Типы событий в истории инцидентов.
const (
	IncidentTypeIncident    = 1 // Инцидент
	IncidentTypeNoDeviation = 2 // Нет отклонения — исключается из всех выборок
	IncidentTypeWarning     = 3 // Предупреждение
)

// IncidentHistory представляет запись журнала отклонений по дому.
// Таблица append-only, заполняется ML-конвейером; сервис только читает.
type IncidentHistory struct {
	IDHouse       int64     `gorm:"column:id_house;index" json:"id_house"`
	Time5min      time.Time `gorm:"column:time_5min" json:"time_5min"`
	TypeIncdnt    int       `gorm:"column:type_incdnt" json:"type_incdnt"`
	DiffrPrcnt1h  *float64  `gorm:"column:diffr_prcnt_1h" json:"diffr_prcnt_1h"`
	CommentIncdnt *string   `gorm:"column:comment_incdnt;type:text" json:"comment_incdnt"`
}

func (IncidentHistory) TableName() string {
	return "incident_hist_2"
}

// IncidentTypeLabel возвращает русское название типа события
func IncidentTypeLabel(t int) string {
	switch t {
	case IncidentTypeIncident:
		return "Инцидент"
	case IncidentTypeWarning:
		return "Предупреждение"
	default:
		return "Тип неизвестен"
	}
}
