package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pskpp/festival/handlers"
	"github.com/pskpp/festival/middleware"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Metrics        *middleware.HTTPMetrics
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// UploadDir is served under /uploads when set.
	UploadDir string
}

type Handlers struct {
	Auth      *handlers.AuthHandler
	Event     *handlers.EventHandler
	Bracket   *handlers.BracketHandler
	Content   *handlers.ContentHandler
	Media     *handlers.MediaHandler
	WebSocket *handlers.WebSocketHandler
	Dashboard *handlers.DashboardHandler
	Profile   *handlers.ProfileHandler
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Handler)
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if opts.UploadDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	router.Get("/ws/events/{eventID}", h.WebSocket.ServeWs)

	requireAdmin := middleware.RequireAdmin(opts.JWTSecret)

	router.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", h.Auth.Login)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin/stats", h.Dashboard.Stats)
			r.Get("/admin/profile", h.Profile.GetProfile)
			r.Put("/admin/profile/image", h.Profile.UploadProfileImage)
			r.Delete("/admin/profile/image", h.Profile.ResetProfileImage)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Event.ListEvents)
			r.Get("/facets", h.Event.GetFacets)
			r.With(requireAdmin).Post("/", h.Event.CreateEvent)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", h.Event.GetEvent)
				r.Get("/bracket", h.Bracket.GetBracket)
				r.Get("/bracket/layout", h.Bracket.GetLayout)
				r.Get("/bracket.svg", h.Bracket.GetSVG)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Put("/", h.Event.UpdateEvent)
					r.Delete("/", h.Event.DeleteEvent)
					r.Post("/featured", h.Event.ToggleFeatured)

					r.Put("/bracket", h.Bracket.ReplaceBracket)
					r.Post("/bracket/generate", h.Bracket.GenerateBracket)
					r.Post("/bracket/rounds", h.Bracket.AddRound)
					r.Delete("/bracket/rounds/{round}", h.Bracket.RemoveRound)
					r.Patch("/bracket/rounds/{round}", h.Bracket.RenameRound)
					r.Post("/bracket/rounds/{round}/matches", h.Bracket.AddMatch)
					r.Delete("/bracket/rounds/{round}/matches/{match}", h.Bracket.RemoveMatch)
					r.Patch("/bracket/rounds/{round}/matches/{match}/participants/{participant}", h.Bracket.UpdateParticipant)
				})
			})
		})

		r.Post("/brackets/layout", h.Bracket.RenderLayout)
		r.Post("/brackets/svg", h.Bracket.RenderSVG)

		// Публичные маршруты
		r.Get("/content", h.Content.GetSiteContent)
		r.Get("/theme.css", h.Content.GetThemeCSS)
		r.Get("/theme", h.Content.GetTheme)
		r.Get("/about", h.Content.GetAbout)
		r.Get("/contact", h.Content.GetContact)
		r.Get("/footer", h.Content.GetFooter)
		r.Get("/hero", h.Content.GetHero)
		r.Get("/sponsors", h.Media.ListSponsors)
		r.Get("/gallery", h.Media.ListGallery)
		r.Get("/links", h.Media.ListLinks)

		// Только для администратора
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Put("/theme", h.Content.SaveTheme)
			r.Delete("/theme", h.Content.ResetTheme)
			r.Put("/about", h.Content.SaveAbout)
			r.Delete("/about", h.Content.ResetAbout)
			r.Put("/contact", h.Content.SaveContact)
			r.Delete("/contact", h.Content.ResetContact)
			r.Put("/footer", h.Content.SaveFooter)
			r.Delete("/footer", h.Content.ResetFooter)
			r.Put("/hero", h.Content.SaveHero)
			r.Delete("/hero", h.Content.ResetHero)

			r.Post("/sponsors", h.Media.UploadSponsors)
			r.Put("/sponsors/order", h.Media.ReorderSponsors)
			r.Delete("/sponsors/{sponsorID}", h.Media.DeleteSponsor)

			r.Post("/gallery", h.Media.UploadGallery)
			r.Post("/gallery/url", h.Media.AddGalleryURL)
			r.Put("/gallery/order", h.Media.ReorderGallery)
			r.Delete("/gallery/{itemID}", h.Media.DeleteGalleryItem)

			r.Post("/links", h.Media.CreateLink)
			r.Put("/links/{linkID}", h.Media.UpdateLink)
			r.Delete("/links/{linkID}", h.Media.DeleteLink)
		})
	})
}
