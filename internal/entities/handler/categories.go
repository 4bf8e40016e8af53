package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/transport/http/shared"
	"bookkeeper/pkg/domain"
	dErrors "bookkeeper/pkg/domain-errors"
)

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories := h.set.Categories.AllCurrent(ctx)
	if kind := r.URL.Query().Get("kind"); kind != "" {
		categories = h.set.Categories.ByKind(ctx, models.CategoryKind(kind))
	} else if r.URL.Query().Get("roots") == "true" {
		categories = h.set.Categories.Roots(ctx)
	}
	shared.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	parentID, err := parseOptionalCategoryID(req.ParentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	v, err := h.set.Categories.Register(r.Context(), models.Category{
		Name:     req.Name,
		ParentID: parentID,
		Kind:     req.Kind,
		Icon:     req.Icon,
		Color:    req.Color,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Categories.GetCurrentVersion(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err, "category")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleCategoryVersions(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Categories.GetAllVersions(r.Context(), id))
}

func (h *Handler) handleCategoryAt(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	at, err := timeParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Categories.GetAtTime(r.Context(), id, at)
	if err != nil {
		h.writeLookupError(w, r, err, "category")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleCategoryChildren(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Categories.Children(r.Context(), id))
}

func (h *Handler) handleCategoryDescendants(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Categories.Descendants(r.Context(), id))
}

func (h *Handler) handleCategoryPath(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	ctx := r.Context()

	path, err := h.set.Categories.Path(ctx, id)
	if err != nil {
		h.writeLookupError(w, r, err, "category")
		return
	}
	display, err := h.set.Categories.PathString(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"path":    path,
		"display": display,
	})
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	parentID, err := parseOptionalCategoryID(req.ParentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.set.Categories.Update(r.Context(), id, req.ChangeReason, func(c *models.Category) {
		c.Name = req.Name
		c.ParentID = parentID
		c.Kind = req.Kind
		c.Icon = req.Icon
		c.Color = req.Color
	}); err != nil {
		h.writeLookupError(w, r, err, "category")
		return
	}

	v, err := h.set.Categories.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleMoveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCategoryID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req moveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	parentID, err := parseOptionalCategoryID(req.ParentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.set.Categories.SetParent(r.Context(), id, parentID); err != nil {
		h.writeLookupError(w, r, err, "category")
		return
	}

	v, err := h.set.Categories.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func parseOptionalCategoryID(s *string) (*domain.CategoryID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := domain.ParseCategoryID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
