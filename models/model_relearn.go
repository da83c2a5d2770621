package models

import "time"

// ModelRelearn — журнал переобучения прогнозных моделей. Сервис только
// регистрирует запуски; само переобучение выполняет внешняя система.
type ModelRelearn struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DateRelearn   time.Time `gorm:"column:date_relearn" json:"date_relearn"`
	ModelName     string    `gorm:"column:model_name;type:varchar(100);not null" json:"model_name"`
	StatusRelearn string    `gorm:"column:status_relearn;type:varchar(50);not null" json:"status_relearn"`
}

func (ModelRelearn) TableName() string {
	return "model_relearn"
}
