package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestDashboardUnknownRegion(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewDashboardService(db)

	_, err := svc.GetMetrics("arbat", 14)
	if !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("ожидалась ErrRegionNotFound, получено %v", err)
	}
}

func TestDashboardCounts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)

	// Порядок запросов: red, yellow, green, in_work, сбои, в обработке
	for _, n := range []int64{3, 7, 90, 4, 10, 2} {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "status_houses"`).
			WillReturnRows(countRows(n))
	}

	metrics, err := svc.GetMetrics("lublino", 30)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if metrics.RegionID != "lublino" || metrics.RegionName != "Район Люблино" {
		t.Errorf("район: %+v", metrics)
	}
	if metrics.PeriodDays != 30 {
		t.Errorf("period_days должен повторять параметр запроса, получено %d", metrics.PeriodDays)
	}

	want := map[string]int{
		"red":                    3,
		"yellow":                 7,
		"green":                  90,
		"in_work":                4,
		"total_current_failures": 10,
		"processed_current":      2,
	}
	for key, n := range want {
		if metrics.Counts[key] != n {
			t.Errorf("счётчик %s = %d, ожидалось %d", key, metrics.Counts[key], n)
		}
	}
}

func TestDashboardQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "status_houses"`).
		WillReturnError(errors.New("connection refused"))

	if _, err := svc.GetMetrics("lublino", 14); err == nil {
		t.Fatal("ошибка запроса должна всплывать")
	}
}
