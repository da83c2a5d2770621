package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/services/container"
)

// HealthCheckController — контроллер проверок работоспособности
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController создаёт контроллер проверок
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping проверка живости процесса
// @Summary      Проверка живости
// @Description  Возвращает ok без обращения к зависимостям
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// DBHealth проверка готовности: доступность базы данных
// @Summary      Проверка базы данных
// @Description  Выполняет SELECT 1; при недоступности БД возвращает 500
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /db-health [get]
func (h *HealthCheckController) DBHealth(c *gin.Context) {
	if err := h.Container.GetDB().Exec("SELECT 1").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"detail": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
