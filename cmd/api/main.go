package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/config"
	"github.com/PalcoPro/band-agenda/internal/db"
	"github.com/PalcoPro/band-agenda/internal/middleware"
	"github.com/PalcoPro/band-agenda/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg)

	log.Printf("servidor ouvindo em %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("erro ao subir servidor: %v", err)
	}
}
