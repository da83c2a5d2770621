package models

// HouseStatus представляет оперативное состояние дома: цвет здоровья и
// стадию инцидента. Не более одной строки на дом; отсутствие строки —
// допустимое состояние «статус неизвестен».
type HouseStatus struct {
	IDHouse        int64   `gorm:"column:id_house;primaryKey;autoIncrement:false" json:"id_house"`
	Unom           int64   `gorm:"column:unom;index" json:"unom"` // копируется из реестра при записи
	StatusIncident *string `gorm:"column:status_incident;type:varchar(50)" json:"status_incident"` // New, Work, Repair, Resolved, NULL
	HouseHealth    *string `gorm:"column:house_health;type:text" json:"house_health"`              // Green, Yellow, Red, NULL
}

func (HouseStatus) TableName() string {
	return "status_houses"
}
