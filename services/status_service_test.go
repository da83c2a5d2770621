package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Vdyuk/forecast-MVC/models"
)

func TestUpdateHouseStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id_house", "unom", "status_incident", "house_health"}))
	mock.ExpectRollback()

	health := models.HealthRed
	_, err := svc.UpdateHouseStatus(99, &StatusUpdateRequest{HouseHealth: &health})
	if !errors.Is(err, ErrHouseNotFound) {
		t.Fatalf("ожидалась ErrHouseNotFound, получено %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("уведомлений быть не должно: %v", notifier.calls)
	}
}

func TestUpdateHouseStatusNotifiesOnDegradation(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	green := models.HealthGreen
	yellow := models.HealthYellow
	work := models.IncidentWork

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &work, &green))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &work, &yellow))
	mock.ExpectCommit()

	// Поиск адреса для письма после коммита
	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(registryRow(100, 5, "ул. Люблинская, д. 5"))

	updated, err := svc.UpdateHouseStatus(5, &StatusUpdateRequest{HouseHealth: &yellow})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if updated.HouseHealth == nil || *updated.HouseHealth != yellow {
		t.Errorf("обновлённая строка: %+v", updated)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("ожидалось одно уведомление, получено %d", len(notifier.calls))
	}
	call := notifier.calls[0]
	if call.idHouse != 5 || call.houseHealth != yellow || call.address != "ул. Люблинская, д. 5" {
		t.Errorf("неверные параметры уведомления: %+v", call)
	}
}

func TestUpdateHouseStatusNotificationUsesFullAddress(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	green := models.HealthGreen
	red := models.HealthRed

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, nil, &green))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, nil, &red))
	mock.ExpectCommit()

	// В реестре заполнены оба адреса, в письмо идёт полный
	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"unom", "n_fias", "id_house", "nreg", "simple_address", "address", "district"}).
			AddRow(int64(100), nil, int64(5), nil, "ул. Люблинская, д. 5", "г. Москва, ул. Люблинская, д. 5", nil))

	_, err := svc.UpdateHouseStatus(5, &StatusUpdateRequest{HouseHealth: &red})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("ожидалось одно уведомление, получено %d", len(notifier.calls))
	}
	if notifier.calls[0].address != "г. Москва, ул. Люблинская, д. 5" {
		t.Errorf("в уведомлении ожидался полный адрес, получено %q", notifier.calls[0].address)
	}
}

func TestUpdateHouseStatusNoChangeNoNotification(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	yellow := models.HealthYellow
	work := models.IncidentWork

	// Повторная запись тех же значений: уведомление не отправляется
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &work, &yellow))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &work, &yellow))
	mock.ExpectCommit()

	if _, err := svc.UpdateHouseStatus(5, &StatusUpdateRequest{HouseHealth: &yellow}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("при неизменном статусе уведомлений быть не должно: %v", notifier.calls)
	}
}

func TestUpdateHouseStatusGreenNoNotification(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	red := models.HealthRed
	green := models.HealthGreen

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, nil, &red))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, nil, &green))
	mock.ExpectCommit()

	if _, err := svc.UpdateHouseStatus(5, &StatusUpdateRequest{HouseHealth: &green}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("восстановление до Green не должно уведомлять: %v", notifier.calls)
	}
}

func TestUpdateHouseStatusIncidentChangeNotifies(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	yellow := models.HealthYellow
	newStage := models.IncidentNew
	work := models.IncidentWork

	// Здоровье остаётся Yellow, но стадия инцидента меняется — уведомляем
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &newStage, &yellow))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(5, 100, &work, &yellow))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(registryRow(100, 5, "адрес"))

	if _, err := svc.UpdateHouseStatus(5, &StatusUpdateRequest{IncidentStatus: &work}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("смена стадии при проблемном здоровье должна уведомлять, вызовов: %d", len(notifier.calls))
	}
}

func TestCreateIncidentUnknownHouse(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"unom", "id_house", "simple_address"}))

	_, err := svc.CreateIncident(404, models.IncidentNew, models.HealthRed)
	if !errors.Is(err, ErrHouseNotFound) {
		t.Fatalf("ожидалась ErrHouseNotFound, получено %v", err)
	}
}

func TestCreateIncidentInsertsAndNotifies(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	// Дом найден в реестре
	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(registryRow(777, 9, "ул. Новая, д. 1"))

	// Строки статуса ещё нет — создаётся новая
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id_house", "unom", "status_incident", "house_health"}))
	mock.ExpectExec(`INSERT INTO "status_houses"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Адрес для письма
	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(registryRow(777, 9, "ул. Новая, д. 1"))

	status, err := svc.CreateIncident(9, models.IncidentNew, models.HealthRed)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if status.Unom != 777 {
		t.Errorf("unom должен копироваться из реестра, получено %d", status.Unom)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("регистрация проблемного инцидента должна уведомлять, вызовов: %d", len(notifier.calls))
	}
}

func TestCreateIncidentGreenNoNotification(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewStatusService(db, notifier)

	green := models.HealthGreen
	resolved := models.IncidentResolved

	mock.ExpectQuery(`SELECT (.+) FROM "lublino_houses_id"`).
		WillReturnRows(registryRow(777, 9, "адрес"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "status_houses"`).
		WillReturnRows(statusRows(9, 777, &resolved, &green))
	mock.ExpectExec(`UPDATE "status_houses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := svc.CreateIncident(9, models.IncidentResolved, models.HealthGreen); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("Green не должен уведомлять: %v", notifier.calls)
	}
}

func TestShouldNotify(t *testing.T) {
	yellow := models.HealthYellow
	red := models.HealthRed
	green := models.HealthGreen
	work := models.IncidentWork
	repair := models.IncidentRepair

	cases := []struct {
		name string
		old  models.HouseStatus
		new  models.HouseStatus
		want bool
	}{
		{"ухудшение до Yellow", models.HouseStatus{HouseHealth: &green}, models.HouseStatus{HouseHealth: &yellow}, true},
		{"ухудшение до Red", models.HouseStatus{HouseHealth: &yellow}, models.HouseStatus{HouseHealth: &red}, true},
		{"без изменений", models.HouseStatus{HouseHealth: &yellow, StatusIncident: &work}, models.HouseStatus{HouseHealth: &yellow, StatusIncident: &work}, false},
		{"смена стадии при Yellow", models.HouseStatus{HouseHealth: &yellow, StatusIncident: &work}, models.HouseStatus{HouseHealth: &yellow, StatusIncident: &repair}, true},
		{"итог Green", models.HouseStatus{HouseHealth: &red}, models.HouseStatus{HouseHealth: &green}, false},
		{"итог без здоровья", models.HouseStatus{HouseHealth: &red}, models.HouseStatus{}, false},
	}
	for _, c := range cases {
		if got := shouldNotify(&c.old, &c.new); got != c.want {
			t.Errorf("%s: shouldNotify = %v, ожидалось %v", c.name, got, c.want)
		}
	}
}
