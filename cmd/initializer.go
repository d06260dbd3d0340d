package main

import (
	"log"
	"net/http"

	"mgaBack/internal/config"
	"mgaBack/internal/handlers"
	"mgaBack/internal/repositories"
	"mgaBack/internal/services"
	"mgaBack/utils"
)

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	signingKey string

	store           repositories.KeyValueStore
	propertyRepo    *repositories.PropertyRepository
	userRepo        *repositories.UserRepository
	favoritesRepo   *repositories.FavoritesRepository
	savedSearchRepo *repositories.SavedSearchesRepository
	settingsRepo    *repositories.SettingsRepository

	propertyService *services.PropertyService
	userService     *services.UserService
	compareService  *services.CompareService
	aiService       *services.AIService

	propertyHandler    *handlers.PropertyHandler
	userHandler        *handlers.UserHandler
	favoritesHandler   *handlers.FavoritesHandler
	savedSearchHandler *handlers.SavedSearchHandler
	compareHandler     *handlers.CompareHandler
	aiHandler          *handlers.AIHandler
	settingsHandler    *handlers.SettingsHandler
}

func initializeApp(store repositories.KeyValueStore, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	propertyRepo := repositories.NewPropertyRepository(store)
	userRepo := repositories.NewUserRepository(store)
	favoritesRepo := repositories.NewFavoritesRepository(store)
	savedSearchRepo := repositories.NewSavedSearchesRepository(store)
	settingsRepo := repositories.NewSettingsRepository(store)

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Printf("token manager disabled: %v", err)
	}

	// Services
	propertyService := &services.PropertyService{
		PropertyRepo:  propertyRepo,
		FavoritesRepo: favoritesRepo,
	}
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.Auth.SigningKey,
	}
	compareService := services.NewCompareService(propertyRepo)
	geminiClient := services.NewGeminiClient(nil, cfg.AI.APIKey, cfg.AI.Model)
	aiService := services.NewAIService(geminiClient, propertyRepo)

	// Handlers
	propertyHandler := &handlers.PropertyHandler{Service: propertyService, UserService: userService}
	userHandler := &handlers.UserHandler{Service: userService}
	favoritesHandler := &handlers.FavoritesHandler{Repo: favoritesRepo}
	savedSearchHandler := &handlers.SavedSearchHandler{Repo: savedSearchRepo}
	compareHandler := &handlers.CompareHandler{Service: compareService}
	aiHandler := &handlers.AIHandler{Service: aiService}
	settingsHandler := &handlers.SettingsHandler{Repo: settingsRepo}

	return &application{
		errorLog:   errorLog,
		infoLog:    infoLog,
		signingKey: cfg.Auth.SigningKey,

		store:           store,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		favoritesRepo:   favoritesRepo,
		savedSearchRepo: savedSearchRepo,
		settingsRepo:    settingsRepo,

		propertyService: propertyService,
		userService:     userService,
		compareService:  compareService,
		aiService:       aiService,

		propertyHandler:    propertyHandler,
		userHandler:        userHandler,
		favoritesHandler:   favoritesHandler,
		savedSearchHandler: savedSearchHandler,
		compareHandler:     compareHandler,
		aiHandler:          aiHandler,
		settingsHandler:    settingsHandler,
	}
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
