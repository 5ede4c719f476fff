package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/geodir/internal/catalog"
	"github.com/sells-group/geodir/internal/query"
)

type handler struct {
	svc *query.Service
}

type healthResponse struct {
	Status string `json:"status"`
	catalog.Stats
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Stats: h.svc.Stats()})
}

func (h *handler) states(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, h.svc.ListStates())
	return nil
}

func (h *handler) districts(w http.ResponseWriter, r *http.Request) error {
	names, err := h.svc.ListDistricts(pathParam(r, "state"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, names)
	return nil
}

func (h *handler) subDistricts(w http.ResponseWriter, r *http.Request) error {
	names, err := h.svc.ListSubDistricts(pathParam(r, "state"), pathParam(r, "district"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, names)
	return nil
}

func (h *handler) villages(w http.ResponseWriter, r *http.Request) error {
	names, err := h.svc.ListVillages(pathParam(r, "state"), pathParam(r, "district"), pathParam(r, "subdistrict"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, names)
	return nil
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) error {
	res, err := h.svc.Search(r.URL.Query().Get("query"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// apiFunc is a route handler that reports failures instead of writing them.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

// route adapts fn to http.HandlerFunc. Not-found and invalid-input errors become
// 404 and 400; any other error or panic becomes a 500 carrying only msg.
func route(msg string, fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				internalError(w, r, msg, zap.Any("panic", rec))
			}
		}()

		err := fn(w, r)
		if err == nil {
			return
		}
		var nf *query.NotFoundError
		switch {
		case errors.As(err, &nf):
			writeError(w, http.StatusNotFound, notFoundMessage(nf.Level))
		case errors.Is(err, query.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, "Search query is required")
		default:
			internalError(w, r, msg, zap.Error(err))
		}
	}
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, cause zap.Field) {
	zap.L().Error("request failed",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		cause,
	)
	writeError(w, http.StatusInternalServerError, msg)
}

func notFoundMessage(level query.Level) string {
	switch level {
	case query.LevelState:
		return "State not found"
	case query.LevelDistrict:
		return "District not found"
	case query.LevelSubDistrict:
		return "Sub-district not found"
	default:
		return "Not found"
	}
}

// pathParam returns a route parameter. chi matches against the escaped path
// when the request carries one, so decode in that case only.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}
