package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/logging"
	"github.com/adiletkanalbekov5-byte/techschool/metrics"
	"github.com/adiletkanalbekov5-byte/techschool/routes"
)

func main() {
	// .env มีก็โหลด ไม่มีก็ใช้ env ตรง ๆ
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// เชื่อมต่อฐานข้อมูล (ถ้า DB ยังไม่ขึ้น โปรแกรมจะ error ทันที — เหมาะสำหรับ early fail)
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	logger.Sugar().Infow("server listening", "addr", addr, "env", cfg.AppEnv)
	if err := e.Start(addr); err != nil {
		logger.Sugar().Fatalw("server stopped", "err", err)
	}
}
