// @title           GVS Monitoring API
// @version         1.0
// @description     Бэкенд панели мониторинга горячего водоснабжения района Люблино

// @host      localhost:8000
// @BasePath  /
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Vdyuk/forecast-MVC/config"
	"github.com/Vdyuk/forecast-MVC/database"
	"github.com/Vdyuk/forecast-MVC/models"
	"github.com/Vdyuk/forecast-MVC/routes"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := config.SetupLogger(); err != nil {
		fmt.Printf("не удалось инициализировать логирование: %v\n", err)
		os.Exit(1)
	}

	// .env опционален: переменные могут быть заданы окружением
	if err := godotenv.Load(); err != nil {
		config.Warning("файл .env не загружен: %v", err)
	} else {
		config.Info("файл .env загружен")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("не удалось создать пул соединений с БД: %v", err)
	}
	db := pool.GetDB()

	if err := autoMigrate(db); err != nil {
		log.Fatalf("миграция схемы не удалась: %v", err)
	}

	r := routes.SetupRouter(db, cfg)

	printSystemInfo(pool)

	port := cfg.ServerPort
	config.Info("сервер запускается на http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		config.Error("не удалось запустить сервер: %v", err)
		os.Exit(1)
	}
}

// autoMigrate мигрирует только таблицы, которыми владеет сервис.
// Реестр домов и телеметрия заполняются внешними конвейерами,
// их схему менять нельзя.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.HouseStatus{},
		&models.ModelRelearn{},
	)
}

// printSystemInfo выводит состояние пула и ресурсы процесса
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		log.Printf("пул соединений с БД: %+v", stats)
	}

	log.Printf("ядер CPU: %d", runtime.NumCPU())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("память: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
