package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func (s *Server) reviewRoutes(r chi.Router) {
	r.Get("/", s.listReviews)
	r.Get("/{id}", s.getReview)
	r.Put("/{id}/status", s.updateReviewStatus)
	r.Delete("/{id}", s.deleteReview)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	opts := []table.Option[types.Review]{
		table.WithSearchKey(
			table.JSONField[types.Review]("productName"),
			table.JSONField[types.Review]("customerName"),
			table.JSONField[types.Review]("comment"),
		),
	}
	if st := types.ReviewStatus(r.URL.Query().Get("status")); st != "" {
		opts = append(opts, table.WithFilter(func(rv types.Review) bool { return rv.Status == st }))
	}
	serveList(s, w, r, s.svc.Reviews.GetAll, opts...)
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	rv, found, err := s.svc.Reviews.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, rv, found, err)
}

func (s *Server) updateReviewStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rv, err := s.svc.Reviews.UpdateStatus(r.Context(), idParam(r), types.ReviewStatus(req.Status))
	writeResult(s, w, r, http.StatusOK, rv, err)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	s.writeNoContent(w, r, s.svc.Reviews.Delete(r.Context(), idParam(r)))
}

func (s *Server) bannerRoutes(r chi.Router) {
	r.Get("/", s.listBanners)
	r.Post("/", s.createBanner)
	r.Get("/{id}", s.getBanner)
	r.Patch("/{id}", s.updateBanner)
	r.Delete("/{id}", s.deleteBanner)
}

func (s *Server) listBanners(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.Banners.GetAll,
		table.WithSearchKey(table.JSONField[types.Banner]("title")))
}

func (s *Server) getBanner(w http.ResponseWriter, r *http.Request) {
	b, found, err := s.svc.Banners.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, b, found, err)
}

func (s *Server) createBanner(w http.ResponseWriter, r *http.Request) {
	var d types.BannerDraft
	if err := decode(w, r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.svc.Banners.Create(r.Context(), d)
	writeResult(s, w, r, http.StatusCreated, b, err)
}

func (s *Server) updateBanner(w http.ResponseWriter, r *http.Request) {
	var patch types.BannerPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.svc.Banners.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, b, err)
}

func (s *Server) deleteBanner(w http.ResponseWriter, r *http.Request) {
	s.writeNoContent(w, r, s.svc.Banners.Delete(r.Context(), idParam(r)))
}

func (s *Server) showcaseRoutes(r chi.Router) {
	r.Get("/", s.listShowcases)
	r.Get("/{id}", s.getShowcase)
	r.Patch("/{id}", s.updateShowcase)
}

func (s *Server) listShowcases(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.Showcases.GetAll,
		table.WithSearchKey(table.JSONField[types.Showcase]("title")))
}

func (s *Server) getShowcase(w http.ResponseWriter, r *http.Request) {
	sc, found, err := s.svc.Showcases.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, sc, found, err)
}

func (s *Server) updateShowcase(w http.ResponseWriter, r *http.Request) {
	var patch types.ShowcasePatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := s.svc.Showcases.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, sc, err)
}

func (s *Server) legalTextRoutes(r chi.Router) {
	r.Get("/", s.listLegalTexts)
	r.Get("/{id}", s.getLegalText)
	r.Patch("/{id}", s.updateLegalText)
}

func (s *Server) listLegalTexts(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.LegalTexts.GetAll,
		table.WithSearchKey(table.JSONField[types.LegalText]("title")))
}

func (s *Server) getLegalText(w http.ResponseWriter, r *http.Request) {
	lt, found, err := s.svc.LegalTexts.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, lt, found, err)
}

func (s *Server) updateLegalText(w http.ResponseWriter, r *http.Request) {
	var patch types.LegalTextPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	lt, err := s.svc.LegalTexts.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, lt, err)
}
