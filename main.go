package main

import (
	"fmt"

	"pos_backend/api"
	"pos_backend/internal/catalog"
	"pos_backend/internal/config"
	"pos_backend/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalogStorage := catalog.NewLocalStorage()
	catalogService := catalog.NewService(catalogStorage, logger)

	salesStorage := sales.NewLocalStorage()
	salesService := sales.NewService(salesStorage, catalogStorage, logger)

	if cfg.SeedSampleData {
		catalog.LoadSampleData(catalogService, cfg.SeedOwnerID, logger)
	}

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.InitRoutes(r, catalogService, salesService, logger)

	if err := r.Run(":" + cfg.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
