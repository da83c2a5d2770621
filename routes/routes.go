package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/controllers"
	_ "github.com/Vdyuk/forecast-MVC/docs"
	"github.com/Vdyuk/forecast-MVC/middleware"
	"github.com/Vdyuk/forecast-MVC/services/container"
)

// SetupRouter инициализирует и возвращает настроенный роутер
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS: фронтенд дашборда ходит с любых хостов
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With"},
		AllowCredentials: false,
	}))

	// Корректный Content-Type с кодировкой UTF-8
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg)

	// Документация Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes настраивает все маршруты API
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// Проверки работоспособности вне префикса /api
	health := controllers.NewHealthCheckController(container)
	r.GET("/health", health.Ping)
	r.GET("/db-health", health.DBHealth)

	api := r.Group("/api")

	// Район: дашборд, список домов, контекст для LLM
	api.GET("/regions/:region_id/dashboard", controllers.HandleDashboardFunc(container, "getDashboard"))
	api.GET("/regions/:region_id/houses", controllers.HandleHouseFunc(container, "getHouses"))
	api.GET("/regions/:region_id/llm-context", controllers.HandleLLMFunc(container, "getRegionContext"))

	// Дома
	api.GET("/houses/options", controllers.HandleHouseFunc(container, "getOptions"))
	api.GET("/houses/:id", controllers.HandleHouseFunc(container, "getHouseDetail"))
	api.GET("/houses/:id/status-detail", controllers.HandleHouseFunc(container, "getHouseStatusDetail"))
	api.POST("/houses/:id/status", controllers.HandleHouseFunc(container, "updateHouseStatus"))

	// LLM: запросы к внешней модели ограничены по частоте
	api.POST("/houses/:id/ask-llm", middleware.RateLimitLLM(), controllers.HandleLLMFunc(container, "askAboutHouse"))
	api.POST("/ask-llm", middleware.RateLimitLLM(), controllers.HandleLLMFunc(container, "askAboutRegion"))

	// v2
	api.GET("/v2/houses/options", controllers.HandleHouseFunc(container, "getOptionsV2"))
	api.POST("/v2/incidents/create", controllers.HandleIncidentFunc(container, "createIncident"))

	// Переобучение моделей и общий прогноз
	api.GET("/model-relearn/history", controllers.HandleRelearnFunc(container, "getHistory"))
	api.POST("/model-relearn/start", controllers.HandleRelearnFunc(container, "startRelearn"))
	api.GET("/forecast-overall", controllers.HandleRelearnFunc(container, "getForecastOverall"))
}
