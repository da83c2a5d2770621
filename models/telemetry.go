package models

import "time"

// Телеметрия по воде заполняется внешним конвейером; сервис выполняет
// только проекции этих таблиц в контекст для LLM.

// WaterConsumption1h — почасовой расход холодной и горячей воды по дому
type WaterConsumption1h struct {
	IDHouse   int64     `gorm:"column:id_house;index" json:"id_house"`
	Time1hour time.Time `gorm:"column:time_1hour" json:"time_1hour"`
	WaterCold *float64  `gorm:"column:water_cold" json:"water_cold"`
	WaterHot  *float64  `gorm:"column:water_hot" json:"water_hot"`
}

func (WaterConsumption1h) TableName() string {
	return "water_consump_hot_1h"
}

// WaterDiffr1h — почасовое отклонение соотношения ХВС/ГВС
type WaterDiffr1h struct {
	IDHouse    int64     `gorm:"column:id_house;index" json:"id_house"`
	Time1hour  time.Time `gorm:"column:time_1hour" json:"time_1hour"`
	DiffrRatio *float64  `gorm:"column:diffr_ratio" json:"diffr_ratio"`
}

func (WaterDiffr1h) TableName() string {
	return "water_diffr_coldhot_1h"
}

// WaterForecast — прогноз расхода ХВС по дому
type WaterForecast struct {
	IDHouse int64     `gorm:"column:id_house;index" json:"id_house"`
	DS      time.Time `gorm:"column:ds" json:"ds"`
	Yhat    float64   `gorm:"column:yhat" json:"yhat"`
}

func (WaterForecast) TableName() string {
	return "water_forecast_all"
}

// ForecastOverall — агрегированный прогноз по району, единственная строка
type ForecastOverall struct {
	V1 float64 `gorm:"column:v1" json:"v1"`
	V2 float64 `gorm:"column:v2" json:"v2"`
}

func (ForecastOverall) TableName() string {
	return "forecast_overall"
}
