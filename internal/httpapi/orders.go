package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// dateLayout is the format of the from and to order filters.
const dateLayout = "2006-01-02"

func (s *Server) orderRoutes(r chi.Router) {
	r.Get("/", s.listOrders)
	r.Get("/{id}", s.getOrder)
	r.Put("/{id}/status", s.updateOrderStatus)
	r.Put("/{id}/shipping", s.updateOrderShipping)
}

// orderFilter reads the status, from, and to query parameters.
func orderFilter(r *http.Request) (resource.OrderFilter, error) {
	q := r.URL.Query()
	f := resource.OrderFilter{Status: types.OrderStatus(q.Get("status"))}
	if f.Status != "" && !f.Status.Valid() {
		return f, types.ErrInvalidStatus
	}
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: %s: %v", types.ErrInvalidFilter, p.name, err)
		}
		*p.dst = t
	}
	return f, nil
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	f, err := orderFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	serveList(s, w, r, s.svc.Orders.GetAll,
		table.WithSearchKey(
			table.StringField(func(o types.Order) string { return o.OrderNumber }),
			table.StringField(func(o types.Order) string { return o.CustomerName }),
		),
		table.WithFilter(f.Match),
	)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, found, err := s.svc.Orders.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, o, found, err)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.svc.Orders.UpdateStatus(r.Context(), idParam(r), types.OrderStatus(req.Status), actor(r))
	writeResult(s, w, r, http.StatusOK, o, err)
}

func (s *Server) updateOrderShipping(w http.ResponseWriter, r *http.Request) {
	var info types.ShippingInfo
	if err := decode(w, r, &info); err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.svc.Orders.UpdateShipping(r.Context(), idParam(r), info, actor(r))
	writeResult(s, w, r, http.StatusOK, o, err)
}

func (s *Server) customerRoutes(r chi.Router) {
	r.Get("/", s.listCustomers)
	r.Get("/{id}", s.getCustomer)
	r.Patch("/{id}", s.updateCustomer)
	r.Put("/{id}/status", s.updateCustomerStatus)
	r.Delete("/{id}", s.deleteCustomer)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	opts := []table.Option[types.Customer]{
		table.WithSearchKey(
			table.StringField(types.Customer.FullName),
			table.JSONField[types.Customer]("email"),
			table.JSONField[types.Customer]("phone"),
		),
	}
	if st := types.ActivityStatus(r.URL.Query().Get("status")); st != "" {
		opts = append(opts, table.WithFilter(func(c types.Customer) bool { return c.Status == st }))
	}
	serveList(s, w, r, s.svc.Customers.GetAll, opts...)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, found, err := s.svc.Customers.GetByID(r.Context(), idParam(r))
	writeFound(s, w, r, c, found, err)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var patch types.CustomerPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Customers.Update(r.Context(), idParam(r), patch)
	writeResult(s, w, r, http.StatusOK, c, err)
}

func (s *Server) updateCustomerStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Customers.UpdateStatus(r.Context(), idParam(r), types.ActivityStatus(req.Status))
	writeResult(s, w, r, http.StatusOK, c, err)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	s.writeNoContent(w, r, s.svc.Customers.Delete(r.Context(), idParam(r)))
}
