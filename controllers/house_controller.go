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

// HouseController обрабатывает запросы по домам и их статусам
type HouseController struct {
	BaseControllerImpl
}

// NewHouseController создаёт контроллер домов
func (f *ControllerFactory) NewHouseController(ctx *gin.Context) *HouseController {
	return &HouseController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// houseID читает и валидирует путь /houses/:id
func (c *HouseController) houseID() (int64, bool) {
	id, err := strconv.ParseInt(c.Context.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c.Context, "идентификатор дома должен быть целым числом")
		return 0, false
	}
	return id, true
}

func (c *HouseController) houseService() services.InterfaceHouseService {
	return c.Container.GetService("house").(services.InterfaceHouseService)
}

// GetHouses список домов района с фильтрами
// @Summary      Список домов района
// @Description  Дома района со статусами; фильтры по цвету, стадии инцидента и подстроке адреса объединяются по И
// @Tags         Houses
// @Produce      json
// @Param        region_id path string true "Идентификатор района" example:"lublino"
// @Param        status query string false "red | yellow | green | in_work"
// @Param        incident_status query string false "Русская метка стадии инцидента" example:"В работе"
// @Param        search query string false "Подстрока адреса"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/regions/{region_id}/houses [get]
func (c *HouseController) GetHouses() {
	regionID := c.Context.Param("region_id")

	status := c.Context.Query("status")
	switch status {
	case "", "red", "yellow", "green", "in_work":
	default:
		response.ParamError(c.Context, "status должен быть одним из: red, yellow, green, in_work")
		return
	}

	filter := &services.HouseFilter{
		Status:         status,
		IncidentStatus: c.Context.Query("incident_status"),
		Search:         c.Context.Query("search"),
	}

	houses, err := c.houseService().ListHouses(regionID, filter)
	if err != nil {
		if errors.Is(err, services.ErrRegionNotFound) {
			response.Fail(c.Context, code.ErrRegionNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, houses)
}

// GetHouseDetail карточка дома
// @Summary      Карточка дома
// @Tags         Houses
// @Produce      json
// @Param        id path int true "Идентификатор дома"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/houses/{id} [get]
func (c *HouseController) GetHouseDetail() {
	id, ok := c.houseID()
	if !ok {
		return
	}

	detail, err := c.houseService().GetHouseDetail(id)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			response.Fail(c.Context, code.ErrHouseNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, detail)
}

// GetHouseStatusDetail срез статуса дома
// @Summary      Статус дома
// @Tags         Houses
// @Produce      json
// @Param        id path int true "Идентификатор дома"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/houses/{id}/status-detail [get]
func (c *HouseController) GetHouseStatusDetail() {
	id, ok := c.houseID()
	if !ok {
		return
	}

	detail, err := c.houseService().GetHouseStatusDetail(id)
	if err != nil {
		if errors.Is(err, services.ErrHouseStatusNotFound) {
			response.Fail(c.Context, code.ErrHouseStatusNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, detail)
}

// UpdateHouseStatus частичное обновление статуса дома
// @Summary      Обновить статус дома
// @Description  Обновляет переданные поля существующей строки статуса; при ухудшении здоровья отправляется уведомление
// @Tags         Houses
// @Accept       json
// @Produce      json
// @Param        id path int true "Идентификатор дома"
// @Param        body body services.StatusUpdateRequest true "Изменяемые поля"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/houses/{id}/status [post]
func (c *HouseController) UpdateHouseStatus() {
	id, ok := c.houseID()
	if !ok {
		return
	}

	var req services.StatusUpdateRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Context, code.ErrBind, nil)
		return
	}

	svc := c.Container.GetService("status").(services.InterfaceStatusService)
	status, err := svc.UpdateHouseStatus(id, &req)
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

// GetOptions первые 100 домов реестра
// @Summary      Дома для выпадающего списка
// @Tags         Houses
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/houses/options [get]
func (c *HouseController) GetOptions() {
	response.Success(c.Context, c.houseService().ListHouseOptions())
}

// GetOptionsV2 все дома реестра, упорядоченные по адресу
// @Summary      Дома для выпадающего списка (v2)
// @Tags         Houses
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/v2/houses/options [get]
func (c *HouseController) GetOptionsV2() {
	response.Success(c.Context, c.houseService().ListHouseOptionsV2())
}

// HandleHouseFunc возвращает обработчик запросов по домам
func HandleHouseFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewHouseController(ctx)

		switch method {
		case "getHouses":
			controller.GetHouses()
		case "getHouseDetail":
			controller.GetHouseDetail()
		case "getHouseStatusDetail":
			controller.GetHouseStatusDetail()
		case "updateHouseStatus":
			controller.UpdateHouseStatus()
		case "getOptions":
			controller.GetOptions()
		case "getOptionsV2":
			controller.GetOptionsV2()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "неизвестный метод",
				"data":    nil,
			})
		}
	}
}
