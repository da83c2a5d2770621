package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB открывает gorm поверх sqlmock с сопоставлением запросов по регэкспу
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

// fakeNotifier записывает вызовы вместо отправки писем
type fakeNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	idHouse        int64
	address        string
	houseHealth    string
	incidentStatus string
}

func (f *fakeNotifier) SendStatusNotification(idHouse int64, address, houseHealth, incidentStatus string) {
	f.calls = append(f.calls, notifyCall{idHouse, address, houseHealth, incidentStatus})
}

func statusRows(idHouse, unom int64, incident, health *string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id_house", "unom", "status_incident", "house_health"}).
		AddRow(idHouse, unom, incident, health)
}

func registryRow(unom int64, idHouse int64, simpleAddress string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"unom", "n_fias", "id_house", "nreg", "simple_address", "address", "district"}).
		AddRow(unom, nil, idHouse, nil, simpleAddress, nil, nil)
}
