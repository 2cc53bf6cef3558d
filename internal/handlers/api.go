package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/workflow"
)

func (h *Handler) api(r chi.Router) {
	r.Get("/summary", h.getSummary)
	r.Get("/mentors", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, "", h.dash.Mentors())
	})

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.listEmployees)
		r.Post("/", h.createEmployee)
		r.Get("/{id}", h.getEmployee)
		r.Put("/{id}", h.updateEmployee)
		r.Post("/{id}/skills", h.addSkill)
		r.Delete("/{id}/skills/{skill}", h.removeSkill)
	})
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.listDocuments)
		r.Post("/", h.uploadDocument)
		r.Get("/{id}", h.getDocument)
		r.Post("/{id}/download", h.downloadDocument)
	})
	r.Route("/libraries", func(r chi.Router) {
		r.Get("/", h.listLibraries)
		r.Post("/", h.createLibrary)
		r.Get("/{id}", h.getLibrary)
	})
	r.Route("/trainings", func(r chi.Router) {
		r.Get("/", h.listTrainings)
		r.Post("/", h.createTraining)
		r.Get("/{id}", h.getTraining)
		r.Post("/{id}/register", h.registerTraining)
	})
	r.Route("/checklists", func(r chi.Router) {
		r.Get("/", h.listChecklists)
		r.Get("/{id}", h.getChecklist)
		r.Post("/{id}/tasks", h.addTask)
		r.Post("/{id}/tasks/{taskID}/toggle", h.toggleTask)
	})
	r.Get("/progress", h.listProgress)
	r.Get("/progress/{id}", h.getProgress)
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Get("/unread-count", h.unreadCount)
		r.Post("/read-all", h.markAllRead)
		r.Post("/{id}/read", h.markRead)
		r.Delete("/{id}", h.deleteNotification)
		r.Get("/settings", h.listSettings)
		r.Post("/settings/{categoryID}/{settingID}/toggle", h.toggleSetting)
	})
	r.Route("/onboarding", func(r chi.Router) {
		r.Get("/phases", h.listPhases)
		r.Get("/phases/active", h.activePhase)
		r.Put("/phases/active", h.selectPhase)
		r.Post("/phases/{id}/steps/{stepID}/complete", h.completeStep)
		r.Get("/resources", h.listResources)
		r.Get("/resources/{id}", h.getResource)
		r.Post("/feedback", h.submitFeedback)
	})

	// the confirm-then-undo workflow, shared by every kind
	r.Post("/deletions", h.requestDelete)
	r.Get("/deletions/{kind}", h.pendingDelete)
	r.Post("/deletions/{kind}/confirm", h.confirmDelete)
	r.Post("/deletions/{kind}/cancel", h.cancelDelete)
	r.Get("/undo", h.pendingUndos)
	r.Post("/undo/{token}", h.undo)
	r.Delete("/undo/{token}", h.dismissUndo)

	r.Get("/toasts", h.listToasts)
	r.Delete("/toasts/{id}", h.deleteToast)

	r.Get("/reports/progress.pdf", h.progressReport)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.dash.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", s)
}

// ── Employees ───────────────────────────────────────────────────────────────

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListEmployees(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := h.dash.GetEmployee(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", e)
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var draft domain.EmployeeDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := h.dash.CreateEmployee(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "employee added", e)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var draft domain.EmployeeDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := h.dash.UpdateEmployee(r.Context(), id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "employee updated", e)
}

func (h *Handler) addSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body struct {
		Skill string `json:"skill"`
	}
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := h.dash.AddSkill(r.Context(), id, body.Skill)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "skill added", e)
}

func (h *Handler) removeSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ev, err := h.dash.RemoveSkill(r.Context(), id, chi.URLParam(r, "skill"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "skill removed", ev)
}

// ── Documents and libraries ─────────────────────────────────────────────────

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListDocuments(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := h.dash.GetDocument(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", doc)
}

func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	var draft domain.DocumentDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := h.dash.UploadDocument(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "document uploaded", doc)
}

func (h *Handler) downloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := h.dash.DownloadDocument(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "document downloaded", doc)
}

func (h *Handler) listLibraries(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.FilterLibraries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getLibrary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	lib, err := h.dash.GetLibrary(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", lib)
}

func (h *Handler) createLibrary(w http.ResponseWriter, r *http.Request) {
	var draft domain.LibraryDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	lib, err := h.dash.CreateLibrary(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "library created", lib)
}

// ── Trainings, checklists, progress ─────────────────────────────────────────

func (h *Handler) listTrainings(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListTrainings(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getTraining(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.dash.GetTraining(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", t)
}

func (h *Handler) createTraining(w http.ResponseWriter, r *http.Request) {
	var draft domain.TrainingDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.dash.CreateTraining(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "training added", t)
}

func (h *Handler) registerTraining(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.dash.RegisterTraining(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "registered", h.dash.Registered())
}

func (h *Handler) listChecklists(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListChecklists(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.dash.GetChecklist(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", c)
}

func (h *Handler) addTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var draft domain.TaskDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.dash.AddTask(r.Context(), id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "task added", c)
}

func (h *Handler) toggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.dash.ToggleTask(r.Context(), id, taskID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "task updated", c)
}

func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.TrainingProgress(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.dash.EmployeeProgress(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

// ── Notifications ───────────────────────────────────────────────────────────

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListNotifications(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.dash.UnreadCount(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]int{"unread": n})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	n, err := h.dash.MarkRead(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "marked as read", n)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.dash.MarkAllRead(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "all marked as read", map[string]int{"changed": n})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ev, err := h.dash.DeleteNotification(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "notification deleted", ev)
}

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.ListSettings(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) toggleSetting(w http.ResponseWriter, r *http.Request) {
	cat, err := pathID(r, "categoryID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "settingID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.dash.ToggleSetting(r.Context(), cat, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "setting updated", s)
}

// ── Onboarding ──────────────────────────────────────────────────────────────

func (h *Handler) listPhases(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.Phases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) activePhase(w http.ResponseWriter, r *http.Request) {
	p, err := h.dash.ActivePhase(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

func (h *Handler) selectPhase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.dash.SelectPhase(r.Context(), body.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

func (h *Handler) completeStep(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	step, err := pathID(r, "stepID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.dash.CompleteStep(r.Context(), id, step)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "step completed", p)
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	list, err := h.dash.Resources(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

func (h *Handler) getResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.dash.GetResource(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", res)
}

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var draft domain.FeedbackDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, err)
		return
	}
	fb, err := h.dash.SubmitFeedback(r.Context(), draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "feedback submitted", fb)
}

// ── Delete, confirm, undo ───────────────────────────────────────────────────

func (h *Handler) requestDelete(w http.ResponseWriter, r *http.Request) {
	var ref workflow.Ref
	if err := decode(r, &ref); err != nil {
		h.fail(w, r, err)
		return
	}
	ref.Name = ""
	ev, err := h.dash.Dispatch(r.Context(), workflow.Command{Type: workflow.RequestDelete, Ref: ref})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusAccepted, "confirmation required", ev)
}

func (h *Handler) pendingDelete(w http.ResponseWriter, r *http.Request) {
	p, ok, err := h.dash.PendingConfirmation(domain.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, workflow.ErrNothingPending)
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	h.resolveGate(w, r, workflow.ConfirmDelete, "deleted")
}

func (h *Handler) cancelDelete(w http.ResponseWriter, r *http.Request) {
	h.resolveGate(w, r, workflow.CancelDelete, "cancelled")
}

func (h *Handler) resolveGate(w http.ResponseWriter, r *http.Request, t workflow.CommandType, msg string) {
	ev, err := h.dash.Dispatch(r.Context(), workflow.Command{
		Type: t,
		Ref:  workflow.Ref{Kind: domain.Kind(chi.URLParam(r, "kind"))},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, msg, ev)
}

func (h *Handler) pendingUndos(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.dash.PendingUndos())
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	ev, err := h.dash.Dispatch(r.Context(), workflow.Command{Type: workflow.Undo, Token: chi.URLParam(r, "token")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "restored", ev)
}

func (h *Handler) dismissUndo(w http.ResponseWriter, r *http.Request) {
	ev, err := h.dash.Dispatch(r.Context(), workflow.Command{Type: workflow.Dismiss, Token: chi.URLParam(r, "token")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "dismissed", ev)
}

// ── Toasts ──────────────────────────────────────────────────────────────────

func (h *Handler) listToasts(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.dash.Toasts())
}

func (h *Handler) deleteToast(w http.ResponseWriter, r *http.Request) {
	if !h.dash.DismissToast(r.Context(), chi.URLParam(r, "id")) {
		h.fail(w, r, domain.ErrNotFound)
		return
	}
	writeSuccess(w, http.StatusOK, "dismissed", nil)
}
