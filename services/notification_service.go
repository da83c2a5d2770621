package services

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/models"
)

// InterfaceNotificationService определяет интерфейс сервиса уведомлений
type InterfaceNotificationService interface {
	// SendStatusNotification отправляет письмо об ухудшении состояния дома.
	// Ошибки доставки не возвращаются: уведомления не должны ломать запись статуса.
	SendStatusNotification(idHouse int64, address, houseHealth, incidentStatus string)
}

// NotificationService отправляет почтовые уведомления через SMTP
type NotificationService struct {
	Config *config.Config

	// точка подмены доставки в тестах
	send func(m *gomail.Message) error
}

// NewNotificationService создаёт сервис уведомлений
func NewNotificationService(cfg *config.Config) *NotificationService {
	s := &NotificationService{Config: cfg}
	s.send = s.sendSMTP
	return s
}

// SendStatusNotification отправляет уведомление о проблемном статусе дома.
// При незаполненной почтовой конфигурации или непроблемном здоровье
// отправка пропускается.
func (s *NotificationService) SendStatusNotification(idHouse int64, address, houseHealth, incidentStatus string) {
	if !s.Config.MailConfigured() {
		config.Warning("почта не настроена, уведомление по дому %d пропущено", idHouse)
		return
	}
	if !models.IsProblemHealth(houseHealth) {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.Config.EmailUser)
	m.SetHeader("To", s.Config.NotificationEmails...)
	m.SetHeader("Subject", fmt.Sprintf("🚨 Новый инцидент в доме - %s", address))
	m.SetBody("text/html", s.buildBody(idHouse, address, houseHealth, incidentStatus))

	if err := s.send(m); err != nil {
		config.Error("не удалось отправить уведомление по дому %d: %v", idHouse, err)
		return
	}
	config.Info("уведомление по дому %d отправлено на %d адрес(ов)", idHouse, len(s.Config.NotificationEmails))
}

func (s *NotificationService) buildBody(idHouse int64, address, houseHealth, incidentStatus string) string {
	var incidentPtr *string
	if incidentStatus != "" {
		incidentPtr = &incidentStatus
	}
	return fmt.Sprintf(`
		<h2>🚨 Зафиксирован новый инцидент</h2>
		<p><b>Адрес:</b> %s</p>
		<p><b>Идентификатор дома:</b> %d</p>
		<p><b>Состояние дома:</b> %s</p>
		<p><b>Статус инцидента:</b> %s</p>
		<p><b>Время:</b> %s</p>
		<p>Проверьте состояние дома в панели мониторинга ГВС.</p>`,
		address,
		idHouse,
		models.HealthDisplayLabel(houseHealth),
		models.IncidentDisplayLabel(incidentPtr),
		time.Now().Format("02.01.2006 15:04:05"),
	)
}

// sendSMTP отправляет письмо через SMTP. Порт 465 означает неявный TLS,
// остальные порты используют STARTTLS.
func (s *NotificationService) sendSMTP(m *gomail.Message) error {
	d := gomail.NewDialer(s.Config.SMTPServer, s.Config.SMTPPort, s.Config.EmailUser, s.Config.EmailPassword)
	if s.Config.SMTPPort == 465 {
		d.SSL = true
	}
	return d.DialAndSend(m)
}
