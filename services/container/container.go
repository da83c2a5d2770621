package container

import (
	"sync"

	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/services"
)

// ServiceContainer управляет внедрением зависимостей всех сервисов
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// Сервисы чтения
	dashboardService  services.InterfaceDashboardService
	houseService      services.InterfaceHouseService
	llmContextService services.InterfaceLLMContextService
	relearnService    services.InterfaceRelearnService

	// Сервисы записи и интеграций
	statusService       services.InterfaceStatusService
	notificationService services.InterfaceNotificationService
	llmService          services.InterfaceLLMService

	mu sync.RWMutex
}

// NewServiceContainer создаёт контейнер сервисов
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("подключение к базе данных не задано")
	}
	if cfg == nil {
		panic("конфигурация не задана")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices инициализирует все сервисы
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Уведомления создаются первыми: сервис статусов зависит от них
	c.notificationService = services.NewNotificationService(c.config)

	c.dashboardService = services.NewDashboardService(c.db)
	c.houseService = services.NewHouseService(c.db)
	c.statusService = services.NewStatusService(c.db, c.notificationService)
	c.llmContextService = services.NewLLMContextService(c.db)
	c.llmService = services.NewLLMService(c.config)
	c.relearnService = services.NewRelearnService(c.db)
}

// GetService возвращает сервис по имени
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "dashboard":
		return c.dashboardService
	case "house":
		return c.houseService
	case "status":
		return c.statusService
	case "notification":
		return c.notificationService
	case "llm_context":
		return c.llmContextService
	case "llm":
		return c.llmService
	case "relearn":
		return c.relearnService
	default:
		return nil
	}
}

// GetDB возвращает подключение к базе данных
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
