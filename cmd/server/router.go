package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nevo-app/nevo-api/internal/api"
	apiMiddleware "github.com/nevo-app/nevo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService)
	lessonHandler := api.NewLessonHandler(app.lessonService)
	assessmentHandler := api.NewAssessmentHandler(app.assessmentService)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Assessment endpoints
			r.Post("/assessments", assessmentHandler.Submit)
			r.Get("/students/{studentID}/assessment", assessmentHandler.GetLatest)

			// Lesson endpoints
			r.Post("/teachers/{teacherID}/lessons", lessonHandler.CreateLesson)
			r.Get("/lessons/{lessonID}", lessonHandler.GetLesson)
			r.Get("/students/{studentID}/lessons", lessonHandler.ListStudentLessons)

			// Dashboard endpoints
			r.Get("/students/{studentID}/summary", dashboardHandler.StudentSummary)
			r.Get("/teachers/{teacherID}/class", dashboardHandler.ClassOverview)
			r.Get(
				"/parents/{parentID}/children/{childID}/guidance",
				dashboardHandler.ParentGuidance,
			)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
