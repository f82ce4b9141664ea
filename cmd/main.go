package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campus-todo/campustodo/config"
	"campus-todo/campustodo/database"
	"campus-todo/campustodo/middleware"
	"campus-todo/campustodo/routes"
	"campus-todo/campustodo/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	userService := services.NewUserService(authService)
	taskService := services.NewTaskService()
	categoryService := services.NewCategoryService()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Everything except register/login sits behind the auth middleware.
	authorized := router.Group("")
	authorized.Use(middleware.AuthMiddleware(db, authService))

	routes.RegisterAuthRoutes(router, authorized, db, userService, authService)
	routes.RegisterTaskRoutes(authorized, db, taskService)
	routes.RegisterCategoryRoutes(authorized, db, categoryService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
