package models

// LublinoHouse представляет запись реестра домов района Люблино.
// Таблица загружается извне (импорт из выгрузки БТИ) и сервисом не изменяется.
type LublinoHouse struct {
	Unom          int64   `gorm:"column:unom;primaryKey" json:"unom"`                         // УНОМ — уникальный номер объекта
	NFias         *string `gorm:"column:n_fias;type:varchar(50)" json:"n_fias"`               // Код ФИАС
	IDHouse       int64   `gorm:"column:id_house;index" json:"id_house"`                      // Внутренний идентификатор дома
	Nreg          *string `gorm:"column:nreg;type:varchar(50)" json:"nreg"`                   // Регистрационный номер
	SimpleAddress *string `gorm:"column:simple_address;type:varchar(255)" json:"simple_address"` // Короткая форма адреса
	Address       *string `gorm:"column:address;type:varchar(255)" json:"address"`            // Полный адрес
	District      *string `gorm:"column:district;type:varchar(100)" json:"district"`          // Район
}

func (LublinoHouse) TableName() string {
	return "lublino_houses_id"
}
