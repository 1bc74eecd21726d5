package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
)

type loginView struct {
	From      string `json:"from,omitempty"`
	DemoEmail string `json:"demoEmail"`
}

// page answers a GET for any path with the router's decision. It never
// waits for the bootstrap check: a protected route still CHECKING gets the
// loading placeholder.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	d := s.deps.Router.Peek(r.URL.Path)

	switch d.Kind {
	case router.KindNotFound:
		s.notFound(w, r)
	case router.KindRedirect:
		http.Redirect(w, r, d.Location, http.StatusSeeOther)
	case router.KindLoading:
		s.writeView(w, r, http.StatusAccepted, router.KindLoading.String(), nil)
	case router.KindRender:
		if d.Route == router.RouteLogin {
			s.writeView(w, r, http.StatusOK, "login", loginView{
				From:      r.URL.Query().Get("from"),
				DemoEmail: api.DemoEmail,
			})
			return
		}
		s.renderView(w, r, d.Route)
	}
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request, route router.Route) {
	opts, err := viewOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	v, err := s.deps.Views.Build(ctx, route, opts)
	if err != nil {
		s.log.Error(ctx, "error building view", "request_id", RequestID(ctx), "route", route, "error", err)
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeView(w, r, http.StatusOK, viewName(route), v)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, r, http.StatusNotFound, router.KindNotFound.String(), nil)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path))
}

// viewOptions reads ?period= and ?metric=; absent values keep the defaults.
func viewOptions(q url.Values) (views.Options, error) {
	var opts views.Options
	if v := q.Get("period"); v != "" {
		p, err := models.ParsePeriod(v)
		if err != nil {
			return opts, err
		}
		opts.Period = p
	}
	if v := q.Get("metric"); v != "" {
		t, err := models.ParseMetricType(v)
		if err != nil {
			return opts, err
		}
		opts.Metric = t
	}
	return opts, nil
}

func viewName(r router.Route) string {
	return strings.TrimPrefix(string(r), "/")
}
