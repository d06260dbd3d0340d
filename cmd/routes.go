package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	publicMiddleware := standardMiddleware.Append(app.OptionalJWTMiddleware)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	leaderAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("leader"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/logout", authMiddleware.ThenFunc(app.userHandler.LogOut))

	// Users
	mux.Post("/user/collaborators", leaderAuthMiddleware.ThenFunc(app.userHandler.AddCollaborator))
	mux.Get("/user/group/:group", leaderAuthMiddleware.ThenFunc(app.userHandler.GetUsersByGroup))
	mux.Post("/user/:id/approve", adminAuthMiddleware.ThenFunc(app.userHandler.ApproveUser))
	mux.Post("/user", adminAuthMiddleware.ThenFunc(app.userHandler.CreateUser))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Get("/user", authMiddleware.ThenFunc(app.userHandler.GetUsers))

	// Properties
	mux.Post("/property/search", publicMiddleware.ThenFunc(app.propertyHandler.Search))
	mux.Post("/property/markers", publicMiddleware.ThenFunc(app.propertyHandler.GetMarkers))
	mux.Get("/property/collaborator/:name", authMiddleware.ThenFunc(app.propertyHandler.GetByCollaborator))
	mux.Get("/property/group/:group", authMiddleware.ThenFunc(app.propertyHandler.GetByGroup))
	mux.Post("/property/:id/featured", adminAuthMiddleware.ThenFunc(app.propertyHandler.ToggleFeatured))
	mux.Post("/property", authMiddleware.ThenFunc(app.propertyHandler.Create))
	mux.Get("/property/:id", publicMiddleware.ThenFunc(app.propertyHandler.GetByID))
	mux.Del("/property/:id", leaderAuthMiddleware.ThenFunc(app.propertyHandler.Delete))
	mux.Get("/regions", standardMiddleware.ThenFunc(app.propertyHandler.GetRegions))
	mux.Get("/groups", standardMiddleware.ThenFunc(app.propertyHandler.GetGroups))

	// Favorites
	mux.Post("/favorites/:property_id/toggle", authMiddleware.ThenFunc(app.favoritesHandler.Toggle))
	mux.Get("/favorites/:property_id", authMiddleware.ThenFunc(app.favoritesHandler.IsFavorite))
	mux.Get("/favorites", authMiddleware.ThenFunc(app.favoritesHandler.GetFavorites))

	// Compare
	mux.Post("/compare/:property_id/toggle", authMiddleware.ThenFunc(app.compareHandler.Toggle))
	mux.Get("/compare", authMiddleware.ThenFunc(app.compareHandler.Get))
	mux.Del("/compare", authMiddleware.ThenFunc(app.compareHandler.Clear))

	// Saved searches
	mux.Get("/saved_searches", authMiddleware.ThenFunc(app.savedSearchHandler.List))
	mux.Post("/saved_searches", authMiddleware.ThenFunc(app.savedSearchHandler.Save))
	mux.Del("/saved_searches/:name", authMiddleware.ThenFunc(app.savedSearchHandler.Delete))

	// Settings
	mux.Get("/settings", authMiddleware.ThenFunc(app.settingsHandler.Get))
	mux.Put("/settings", authMiddleware.ThenFunc(app.settingsHandler.Save))

	// AI
	mux.Post("/ai/query", publicMiddleware.ThenFunc(app.aiHandler.Query))
	mux.Post("/ai/fengshui", authMiddleware.ThenFunc(app.aiHandler.FengShui))
	mux.Post("/ai/investment", authMiddleware.ThenFunc(app.aiHandler.InvestmentAdvice))
	mux.Post("/ai/property/:id/description", leaderAuthMiddleware.ThenFunc(app.aiHandler.GenerateDescription))
	mux.Post("/ai/property/descriptions", adminAuthMiddleware.ThenFunc(app.aiHandler.GenerateAllDescriptions))
	mux.Get("/ai/property/:id/analysis", authMiddleware.ThenFunc(app.aiHandler.AgentAnalysis))

	// Chat assistant
	mux.Get("/ws/chat", http.HandlerFunc(app.ChatWebSocketHandler))

	return mux
}
