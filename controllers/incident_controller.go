package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/internal/error/code"
	"github.com/Vdyuk/forecast-MVC/internal/error/response"
	"github.com/Vdyuk/forecast-MVC/services"
	"github.com/Vdyuk/forecast-MVC/services/container"
)

// IncidentController обрабатывает регистрацию инцидентов (v2)
type IncidentController struct {
	BaseControllerImpl
}

// NewIncidentController создаёт контроллер инцидентов
func (f *ControllerFactory) NewIncidentController(ctx *gin.Context) *IncidentController {
	return &IncidentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// CreateIncidentRequest — тело запроса регистрации инцидента
type CreateIncidentRequest struct {
	IDHouse        *int64 `json:"id_house"`
	StatusIncident string `json:"status_incident"`
	HouseHealth    string `json:"house_health"`
}

// CreateIncident регистрирует инцидент по дому
// @Summary      Зарегистрировать инцидент
// @Description  Создаёт или перезаписывает строку статуса дома; при проблемном здоровье отправляется уведомление
// @Tags         Incidents
// @Accept       json
// @Produce      json
// @Param        body body CreateIncidentRequest true "Инцидент"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/v2/incidents/create [post]
func (c *IncidentController) CreateIncident() {
	var req CreateIncidentRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Context, code.ErrBind, nil)
		return
	}
	if req.IDHouse == nil || req.StatusIncident == "" || req.HouseHealth == "" {
		response.ParamError(c.Context, "id_house, status_incident и house_health обязательны")
		return
	}

	svc := c.Container.GetService("status").(services.InterfaceStatusService)
	status, err := svc.CreateIncident(*req.IDHouse, req.StatusIncident, req.HouseHealth)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			response.Fail(c.Context, code.ErrHouseNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, status)
}

// HandleIncidentFunc возвращает обработчик запросов инцидентов
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewIncidentController(ctx)

		switch method {
		case "createIncident":
			controller.CreateIncident()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "неизвестный метод",
				"data":    nil,
			})
		}
	}
}
