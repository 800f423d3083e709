package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func (s *Server) productRoutes(r chi.Router) {
	r.Get("/", s.listProducts)
	r.Post("/", s.createProduct)
	r.Get("/{id}", s.getProduct)
	r.Patch("/{id}", s.updateProduct)
	r.Delete("/{id}", s.deleteProduct)
	r.Put("/{id}/active", s.setProductActive)
	r.Put("/{id}/featured", s.setProductFeatured)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	opts := []table.Option[types.Product]{
		table.WithSearchKey(
			table.StringField(func(p types.Product) string { return p.Name }),
			table.StringField(func(p types.Product) string { return p.SKU }),
		),
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		opts = append(opts, table.WithFilter(func(p types.Product) bool { return p.CategoryID == cat }))
	}
	serveList(s, w, r, s.svc.Products.GetAll, opts...)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, found, err := s.svc.Products.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, p, found, err)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var d types.ProductDraft
	if err := decode(w, r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Products.Create(r.Context(), d)
	writeResult(s, w, r, http.StatusCreated, p, err)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch types.ProductPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Products.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, p, err)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.writeNoContent(w, r, s.svc.Products.Delete(r.Context(), idParam(r)))
}

func (s *Server) setProductActive(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Products.SetActive(r.Context(), idParam(r), req.Value)
	writeResult(s, w, r, http.StatusOK, p, err)
}

func (s *Server) setProductFeatured(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Products.SetFeatured(r.Context(), idParam(r), req.Value)
	writeResult(s, w, r, http.StatusOK, p, err)
}

func (s *Server) categoryRoutes(r chi.Router) {
	r.Get("/", s.listCategories)
	r.Post("/", s.createCategory)
	r.Get("/{id}", s.getCategory)
	r.Patch("/{id}", s.updateCategory)
	r.Delete("/{id}", s.deleteCategory)
	r.Put("/{id}/active", s.setCategoryActive)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.svc.Categories.GetAll,
		table.WithSearchKey(table.JSONField[types.Category]("name")))
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, found, err := s.svc.Categories.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, c, found, err)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var d types.CategoryDraft
	if err := decode(w, r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Categories.Create(r.Context(), d)
	writeResult(s, w, r, http.StatusCreated, c, err)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var patch types.CategoryPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Categories.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, c, err)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.writeNoContent(w, r, s.svc.Categories.Delete(r.Context(), idParam(r)))
}

func (s *Server) setCategoryActive(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Categories.SetActive(r.Context(), idParam(r), req.Value)
	writeResult(s, w, r, http.StatusOK, c, err)
}
