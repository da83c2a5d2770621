package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/services/container"
)

// BaseController — базовый интерфейс всех контроллеров
type BaseController interface {
	// Контейнер сервисов
	GetContainer() *container.ServiceContainer
	// Контекст Gin
	GetContext() *gin.Context
}

// BaseControllerImpl — базовая реализация контроллера
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer реализует BaseController
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext реализует BaseController
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory — фабрика контроллеров
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory создаёт фабрику контроллеров
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}
