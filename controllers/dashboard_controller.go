package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/internal/error/code"
	"github.com/Vdyuk/forecast-MVC/internal/error/response"
	"github.com/Vdyuk/forecast-MVC/services"
	"github.com/Vdyuk/forecast-MVC/services/container"
)

// DashboardController обрабатывает запросы метрик дашборда
type DashboardController struct {
	BaseControllerImpl
}

// NewDashboardController создаёт контроллер дашборда
func (f *ControllerFactory) NewDashboardController(ctx *gin.Context) *DashboardController {
	return &DashboardController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetDashboard метрики района
// @Summary      Метрики дашборда района
// @Description  Счётчики домов по состояниям здоровья и стадиям инцидентов
// @Tags         Dashboard
// @Produce      json
// @Param        region_id path string true "Идентификатор района" example:"lublino"
// @Param        days query int false "Период в днях, 1..90, по умолчанию 14"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/regions/{region_id}/dashboard [get]
func (c *DashboardController) GetDashboard() {
	regionID := c.Context.Param("region_id")

	days, err := strconv.Atoi(c.Context.DefaultQuery("days", "14"))
	if err != nil || days < 1 || days > 90 {
		response.ParamError(c.Context, "days должен быть целым числом от 1 до 90")
		return
	}

	svc := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	metrics, err := svc.GetMetrics(regionID, days)
	if err != nil {
		if errors.Is(err, services.ErrRegionNotFound) {
			response.Fail(c.Context, code.ErrRegionNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, metrics)
}

// HandleDashboardFunc возвращает обработчик запросов дашборда
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewDashboardController(ctx)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "неизвестный метод",
				"data":    nil,
			})
		}
	}
}
