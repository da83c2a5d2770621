package models

// RegionIDToName — поддерживаемые районы. Сейчас сервис обслуживает один
// район; структура оставлена картой под будущее расширение.
var RegionIDToName = map[string]string{
	"lublino": "Район Люблино",
}

// KnownRegion проверяет, поддерживается ли район
func KnownRegion(regionID string) bool {
	_, ok := RegionIDToName[regionID]
	return ok
}

// RegionName возвращает отображаемое имя района
func RegionName(regionID string) string {
	if name, ok := RegionIDToName[regionID]; ok {
		return name
	}
	return "Неизвестный район"
}
