package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required). The closing page is public because
	// the ended transition destroys the login before landing there.
	r.Get("/login", ui.HandleLogin)
	r.Post("/login", ui.HandleLoginPost)
	r.Get("/thankyou", ui.HandleThankYou)

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Get("/", ui.HandleHome)
		r.Get("/logout", ui.HandleLogout)
		r.Get("/countdown/stream", ui.HandleCountdownStream)

		// Roster
		r.Post("/members", ui.HandleMemberAdd)
		r.Post("/members/{id}/delete", ui.HandleMemberDelete)

		// Exam surface
		r.Route("/questions", func(r chi.Router) {
			r.Get("/", ui.HandleQuestions)
			r.Post("/{num}/save", ui.HandleDraftSave)
			r.Post("/{num}/submit", ui.HandleSubmit)
		})

		// Supervisor routes (admin required).
		r.Route("/admin", func(r chi.Router) {
			r.Use(ui.AdminMiddleware)
			r.Get("/", ui.HandleAdminHome)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", ui.HandleAdminTeams)
				r.Post("/", ui.HandleAdminTeamCreate)
				r.Post("/{id}", ui.HandleAdminTeamUpdate)
				r.Post("/{id}/delete", ui.HandleAdminTeamDelete)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", ui.HandleAdminSessions)
				r.Post("/", ui.HandleAdminSessionCreate)
				r.Post("/{id}", ui.HandleAdminSessionUpdate)
				r.Post("/{id}/delete", ui.HandleAdminSessionDelete)
			})

			r.Route("/problems", func(r chi.Router) {
				r.Get("/", ui.HandleAdminProblems)
				r.Post("/", ui.HandleAdminProblemCreate)
				r.Get("/{num}", ui.HandleAdminProblemEdit)
				r.Post("/{num}", ui.HandleAdminProblemUpdate)
				r.Post("/{num}/delete", ui.HandleAdminProblemDelete)
			})
		})
	})
}
