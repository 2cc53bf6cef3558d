package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/metrics"
	"github.com/csg33k/staffdesk/internal/service"
	"github.com/csg33k/staffdesk/internal/templates"
	"github.com/csg33k/staffdesk/internal/workflow"
)

type Options struct {
	Metrics *metrics.Recorder
	Logger  *slog.Logger
	// Ready reports whether the backing store is usable. Nil means always.
	Ready func(context.Context) error
}

type Handler struct {
	dash    *service.Dashboard
	metrics *metrics.Recorder
	log     *slog.Logger
	ready   func(context.Context) error
}

func New(dash *service.Dashboard, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{dash: dash, metrics: opts.Metrics, log: opts.Logger, ready: opts.Ready}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", h.readyz)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Get("/", h.index)
	r.Get("/employees", h.employeesPage)
	r.Get("/employees/search", h.employeeSearch)
	r.Post("/employees/{id}/delete", h.requestEmployeeDelete)
	r.Post("/employees/delete/confirm", h.confirmEmployeeDelete)
	r.Post("/employees/delete/cancel", h.cancelEmployeeDelete)
	r.Get("/toasts", h.toasts)
	r.Delete("/toasts/{id}", h.dismissToast)
	r.Post("/undo/{token}", h.undoFragment)

	r.Route("/api/v1", h.api)
	return r
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "NOT_READY", err.Error(), nil)
			return
		}
	}
	writeSuccess(w, http.StatusOK, "ready", nil)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	s, err := h.dash.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	render(w, r, templates.Index(templates.SummaryView(s)))
}

func (h *Handler) employeesPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	list, err := h.dash.ListEmployees(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	render(w, r, templates.Employees(list, q))
}

func (h *Handler) employeeSearch(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListEmployees(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	render(w, r, templates.EmployeeRows(list))
}

// requestEmployeeDelete opens the employee gate and renders the dialog.
func (h *Handler) requestEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ev, err := h.dash.Dispatch(r.Context(), workflow.Command{
		Type: workflow.RequestDelete,
		Ref:  workflow.Ref{Kind: domain.KindEmployee, ID: id},
	})
	if err != nil {
		status, _, msg := mapDomainError(err)
		http.Error(w, msg, status)
		return
	}
	render(w, r, templates.Confirm(workflow.Pending{Ref: ev.Ref, Snapshot: ev.Snapshot}, "employees"))
}

func (h *Handler) confirmEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	h.gateFragment(w, r, workflow.ConfirmDelete)
}

func (h *Handler) cancelEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	h.gateFragment(w, r, workflow.CancelDelete)
}

// gateFragment resolves the employee gate, clears the dialog and asks the
// page to refresh its rows and toasts.
func (h *Handler) gateFragment(w http.ResponseWriter, r *http.Request, t workflow.CommandType) {
	_, err := h.dash.Dispatch(r.Context(), workflow.Command{Type: t, Ref: workflow.Ref{Kind: domain.KindEmployee}})
	if err != nil {
		status, _, msg := mapDomainError(err)
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("HX-Trigger", "employees, toasts")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) toasts(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Toasts(h.dash.Toasts()))
}

func (h *Handler) dismissToast(w http.ResponseWriter, r *http.Request) {
	h.dash.DismissToast(r.Context(), chi.URLParam(r, "id"))
	render(w, r, templates.Toasts(h.dash.Toasts()))
}

func (h *Handler) undoFragment(w http.ResponseWriter, r *http.Request) {
	_, err := h.dash.Dispatch(r.Context(), workflow.Command{Type: workflow.Undo, Token: chi.URLParam(r, "token")})
	w.Header().Set("HX-Trigger", "employees, toasts")
	if err != nil {
		status, _, msg := mapDomainError(err)
		http.Error(w, msg, status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) progressReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.dash.Report(r.Context(), &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	filename := fmt.Sprintf("staff_progress_%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrInvalidID, key, chi.URLParam(r, key))
	}
	return id, nil
}
