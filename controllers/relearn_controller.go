package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/internal/error/code"
	"github.com/Vdyuk/forecast-MVC/internal/error/response"
	"github.com/Vdyuk/forecast-MVC/services"
	"github.com/Vdyuk/forecast-MVC/services/container"
)

// RelearnController обрабатывает журнал переобучения и общий прогноз
type RelearnController struct {
	BaseControllerImpl
}

// NewRelearnController создаёт контроллер переобучения
func (f *ControllerFactory) NewRelearnController(ctx *gin.Context) *RelearnController {
	return &RelearnController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// StartRelearnRequest — тело запроса запуска переобучения
type StartRelearnRequest struct {
	ModelName string `json:"model_name"`
}

func (c *RelearnController) relearnService() services.InterfaceRelearnService {
	return c.Container.GetService("relearn").(services.InterfaceRelearnService)
}

// GetHistory журнал запусков переобучения
// @Summary      История переобучения моделей
// @Tags         Relearn
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/model-relearn/history [get]
func (c *RelearnController) GetHistory() {
	response.Success(c.Context, c.relearnService().GetHistory())
}

// StartRelearn регистрирует запуск переобучения
// @Summary      Запуск переобучения модели
// @Tags         Relearn
// @Accept       json
// @Produce      json
// @Param        body body StartRelearnRequest false "Имя модели"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/model-relearn/start [post]
func (c *RelearnController) StartRelearn() {
	var req StartRelearnRequest
	// Тело опционально: пустое означает имя по умолчанию
	_ = c.Context.ShouldBindJSON(&req)

	entry, err := c.relearnService().StartRelearn(req.ModelName)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, entry)
}

// GetForecastOverall агрегированный прогноз по району
// @Summary      Общий прогноз по району
// @Tags         Relearn
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/forecast-overall [get]
func (c *RelearnController) GetForecastOverall() {
	overall, err := c.relearnService().GetForecastOverall()
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, overall)
}

// HandleRelearnFunc возвращает обработчик запросов переобучения
func HandleRelearnFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewRelearnController(ctx)

		switch method {
		case "getHistory":
			controller.GetHistory()
		case "startRelearn":
			controller.StartRelearn()
		case "getForecastOverall":
			controller.GetForecastOverall()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "неизвестный метод",
				"data":    nil,
			})
		}
	}
}
