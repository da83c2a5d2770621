package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vdyuk/forecast-MVC/internal/error/code"
	"github.com/Vdyuk/forecast-MVC/internal/error/response"
	"github.com/Vdyuk/forecast-MVC/services"
	"github.com/Vdyuk/forecast-MVC/services/container"
)

// LLMController обрабатывает вопросы к LLM и выдачу контекста
type LLMController struct {
	BaseControllerImpl
}

// NewLLMController создаёт контроллер LLM
func (f *ControllerFactory) NewLLMController(ctx *gin.Context) *LLMController {
	return &LLMController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// QuestionRequest — тело запроса с вопросом
type QuestionRequest struct {
	Question string `json:"question"`
}

// AnswerResponse — ответ LLM
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// question валидирует тело запроса до каких-либо обращений к БД и LLM
func (c *LLMController) question() (string, bool) {
	var req QuestionRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Context, code.ErrBind, nil)
		return "", false
	}
	q := strings.TrimSpace(req.Question)
	if q == "" {
		response.ParamError(c.Context, "question обязателен")
		return "", false
	}
	return q, true
}

func (c *LLMController) failLLM(err error) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrLLMNotConfigured):
		response.Fail(c.Context, code.ErrLLMNotConfigured, nil)
	case errors.As(err, &upstream):
		response.FailWithMessage(c.Context, code.ErrLLMUpstream,
			"OpenRouter error: "+upstream.Message, nil)
	default:
		response.Fail(c.Context, code.ErrLLMGeneration, nil)
	}
}

// AskAboutHouse вопрос о конкретном доме
// @Summary      Вопрос LLM о доме
// @Description  Собирает контекст по дому (статусы, расход, прогноз, инциденты) и спрашивает LLM
// @Tags         LLM
// @Accept       json
// @Produce      json
// @Param        id path int true "Идентификатор дома"
// @Param        body body QuestionRequest true "Вопрос"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/houses/{id}/ask-llm [post]
func (c *LLMController) AskAboutHouse() {
	question, ok := c.question()
	if !ok {
		return
	}

	houseCtrl := &HouseController{BaseControllerImpl: c.BaseControllerImpl}
	id, ok := houseCtrl.houseID()
	if !ok {
		return
	}

	houseSvc := c.Container.GetService("house").(services.InterfaceHouseService)
	house, err := houseSvc.GetHouseDetail(id)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			response.Fail(c.Context, code.ErrHouseNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	contextSvc := c.Container.GetService("llm_context").(services.InterfaceLLMContextService)
	contextBlock := contextSvc.BuildHouseContext(house)

	llm := c.Container.GetService("llm").(services.InterfaceLLMService)
	answer, err := llm.AskAboutHouse(contextBlock, question)
	if err != nil {
		c.failLLM(err)
		return
	}
	response.Success(c.Context, AnswerResponse{Answer: answer})
}

// AskAboutRegion вопрос о районе в целом
// @Summary      Вопрос LLM о районе
// @Tags         LLM
// @Accept       json
// @Produce      json
// @Param        body body QuestionRequest true "Вопрос"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/ask-llm [post]
func (c *LLMController) AskAboutRegion() {
	question, ok := c.question()
	if !ok {
		return
	}

	contextSvc := c.Container.GetService("llm_context").(services.InterfaceLLMContextService)
	contextBlock := contextSvc.BuildRegionContext("lublino")

	llm := c.Container.GetService("llm").(services.InterfaceLLMService)
	answer, err := llm.AskAboutRegion(contextBlock, question)
	if err != nil {
		c.failLLM(err)
		return
	}
	response.Success(c.Context, AnswerResponse{Answer: answer})
}

// GetRegionContext контекст проблемных домов без обращения к LLM
// @Summary      Контекст района для LLM
// @Tags         LLM
// @Produce      json
// @Param        region_id path string true "Идентификатор района" example:"lublino"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/regions/{region_id}/llm-context [get]
func (c *LLMController) GetRegionContext() {
	regionID := c.Context.Param("region_id")

	contextSvc := c.Container.GetService("llm_context").(services.InterfaceLLMContextService)
	ctx, err := contextSvc.RegionProblemContext(regionID)
	if err != nil {
		if errors.Is(err, services.ErrRegionNotFound) {
			response.Fail(c.Context, code.ErrRegionNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}
	response.Success(c.Context, ctx)
}

// HandleLLMFunc возвращает обработчик запросов к LLM
func HandleLLMFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewLLMController(ctx)

		switch method {
		case "askAboutHouse":
			controller.AskAboutHouse()
		case "askAboutRegion":
			controller.AskAboutRegion()
		case "getRegionContext":
			controller.GetRegionContext()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "неизвестный метод",
				"data":    nil,
			})
		}
	}
}
