package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes() {
	s.App.Get("/healthz", s.health)
	s.App.Get("/metrics", adaptor.HTTPHandler(s.engine.Metrics().Handler()))

	api := s.App.Group("/api")
	api.Get("/categories", s.listCategories)
	api.Get("/taxonomy", s.getTaxonomy)
	api.Get("/keywords/unclassified", s.listUnclassified)
	api.Get("/keywords/:keyword/examples", s.keywordExamples)
	api.Post("/classify", s.classify)
	api.Post("/scan", s.scan)
	api.Post("/suggest", s.suggest)
	api.Get("/lint", s.lint)
	api.Get("/calls", s.listCalls)
	api.Get("/calls/:id", s.getCall)
	api.Get("/calls/:id/analysis", s.analyzeCall)

	s.App.Get("/review/:id", s.reviewPage)
	s.App.Post("/review/:id", s.reviewClassify)
}
