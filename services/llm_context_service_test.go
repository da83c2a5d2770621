package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Vdyuk/forecast-MVC/models"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestFormatWaterRows(t *testing.T) {
	if got := formatWaterRows(nil); got != "Нет данных" {
		t.Errorf("пустой набор: %q", got)
	}

	rows := []waterRow{
		{TimeStr: "01/09 10:00", WaterCold: floatPtr(1.5), WaterHot: floatPtr(0.8)},
		{TimeStr: "01/09 09:00", WaterCold: floatPtr(2), WaterHot: nil},
	}
	got := formatWaterRows(rows)
	if !strings.Contains(got, "- 01/09 10:00: water_cold: 1.5, water_hot: 0.8") {
		t.Errorf("первая строка: %q", got)
	}
	if !strings.Contains(got, "- 01/09 09:00: water_cold: 2") || strings.Contains(got, "09:00: water_cold: 2, water_hot") {
		t.Errorf("nil значения должны пропускаться: %q", got)
	}
}

func TestFormatForecastRows(t *testing.T) {
	if got := formatForecastRows(nil); got != "Нет данных" {
		t.Errorf("пустой набор: %q", got)
	}
	got := formatForecastRows([]forecastRow{{TimeStr: "02/09 12:00", Yhat: 3.2}})
	if !strings.Contains(got, "(прогноз)") {
		t.Errorf("прогнозная строка должна помечаться: %q", got)
	}
}

func TestFormatHouseIncidents(t *testing.T) {
	if got := formatHouseIncidents(nil); got != "Нет данных об инцидентах за последние 24 часа." {
		t.Errorf("пустой набор: %q", got)
	}

	rows := []houseIncidentRow{
		{TimeStr: "01/09 08:15", TypeIncdnt: models.IncidentTypeIncident, ChangePercent: floatPtr(12.5), Comment: nil},
		{TimeStr: "01/09 07:10", TypeIncdnt: models.IncidentTypeWarning, ChangePercent: nil, Comment: strPtr("рост расхода")},
	}
	got := formatHouseIncidents(rows)
	if !strings.Contains(got, "- 01/09 08:15: Инцидент (Изменение: 12.50%) - Комментарий отсутствует") {
		t.Errorf("строка инцидента: %q", got)
	}
	if !strings.Contains(got, "- 01/09 07:10: Предупреждение (Изменение: N/A) - рост расхода") {
		t.Errorf("строка предупреждения: %q", got)
	}
}

func TestFormatRegionalIncidents(t *testing.T) {
	if got := formatRegionalIncidents(nil); got != "Нет данных о последних инцидентах или предупреждениях за последние 24 часа." {
		t.Errorf("пустой набор: %q", got)
	}
	rows := []regionalIncidentRow{
		{Address: strPtr("ул. Люблинская, д. 5"), TimeStr: "01/09 08:15", TypeIncdnt: models.IncidentTypeIncident, Comment: nil},
		{Address: nil, TimeStr: "01/09 07:00", TypeIncdnt: models.IncidentTypeWarning, Comment: strPtr("шум")},
	}
	got := formatRegionalIncidents(rows)
	if !strings.Contains(got, "- ул. Люблинская, д. 5 (01/09 08:15): Инцидент - Комментарий отсутствует") {
		t.Errorf("строка: %q", got)
	}
	if !strings.Contains(got, "- Адрес не указан (01/09 07:00): Предупреждение - шум") {
		t.Errorf("отсутствующий адрес: %q", got)
	}
}

func TestFormatRegionalForecastsCap(t *testing.T) {
	if got := formatRegionalForecasts(nil); !strings.HasPrefix(got, "Нет прогнозных данных по ХВС") {
		t.Errorf("пустой набор: %q", got)
	}

	rows := make([]regionalForecastRow, 30)
	for i := range rows {
		rows[i] = regionalForecastRow{Address: strPtr("адрес"), TimeStr: "02/09 12:00", Yhat: float64(i)}
	}
	got := formatRegionalForecasts(rows)
	if n := strings.Count(got, "\n") + 1; n != 20 {
		t.Errorf("должно показываться не больше 20 строк, получено %d", n)
	}
}

func TestRegionProblemContextUnknownRegion(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewLLMContextService(db)

	if _, err := svc.RegionProblemContext("arbat"); err != ErrRegionNotFound {
		t.Fatalf("ожидалась ErrRegionNotFound, получено %v", err)
	}
}

func TestRegionProblemContextLines(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLLMContextService(db)

	red := models.HealthRed
	work := models.IncidentWork

	mock.ExpectQuery(`SELECT (.+) FROM "status_houses" "sh" JOIN`).
		WillReturnRows(joinedRows().
			AddRow(int64(1), int64(101), &work, &red, "ул. Первая, д. 1", nil).
			AddRow(int64(2), int64(102), nil, &red, nil, nil))

	ctx, err := svc.RegionProblemContext("lublino")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ctx.Region != "Район Люблино" || ctx.TotalProblemHouses != 2 {
		t.Errorf("контекст: %+v", ctx)
	}
	if ctx.Houses[0] != "ул. Первая, д. 1 - Критический инцидент (Work)" {
		t.Errorf("первая строка: %q", ctx.Houses[0])
	}
	if ctx.Houses[1] != "Адрес не указан - Критический инцидент (Статус не задан)" {
		t.Errorf("вторая строка: %q", ctx.Houses[1])
	}
}

func TestForecastsForHousesSummary(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLLMContextService(db)

	mock.ExpectQuery(`FROM water_forecast_all wf`).
		WillReturnRows(sqlmock.NewRows([]string{"simple_address", "time_str", "yhat"}).
			AddRow("адрес", "02/09 10:00", 1.1).
			AddRow("адрес", "02/09 11:00", 1.2))

	rows, summary := svc.forecastsForHouses([]int64{1, 2, 3})
	if len(rows) != 2 {
		t.Fatalf("ожидалось 2 строки, получено %d", len(rows))
	}
	if !strings.Contains(summary, "для 3 рандомных домов") || !strings.Contains(summary, ": 2.") {
		t.Errorf("сводка: %q", summary)
	}
	if !strings.Contains(summary, "с 02/09 10:00 до 02/09 11:00") {
		t.Errorf("границы прогноза: %q", summary)
	}
}

func strPtr(s string) *string {
	return &s
}
