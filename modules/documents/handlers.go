package documents

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platdesign/i18ngoose/pkg/document"
	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/logger"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

var errMethodNotAllowed = errors.New("documents: method not allowed")

type handler struct {
	schema  *schema.Schema
	storage Storage
	logger  *slog.Logger
	maxBody int64
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.LanguageFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, i18n.ErrLanguageRequired)
		return
	}
	raw, err := h.decode(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := i18n.InitFromRaw(h.schema, lang, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.storage.Insert(r.Context(), doc); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "document created", logger.DocumentID(doc.ID()))
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID()})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.storage.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, doc)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.LanguageFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, i18n.ErrLanguageRequired)
		return
	}
	raw, err := h.decode(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := h.storage.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := i18n.SetFromRaw(doc, lang, raw); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.storage.Replace(r.Context(), doc); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "document updated", logger.DocumentID(doc.ID()))
	h.respond(w, r, http.StatusOK, doc)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.storage.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "document deleted", logger.DocumentID(id))
	w.WriteHeader(http.StatusNoContent)
}

// respond writes doc localized to the request language, or in full with its
// id when the request names no language.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, doc *document.Document) {
	var (
		out map[string]any
		err error
	)
	if lang, ok := i18n.LanguageFromContext(r.Context()); ok {
		out, err = i18n.ToLocalizedJSON(doc, lang, document.WithID())
	} else {
		out, err = doc.ToJSON(document.WithID())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, out)
}

func (h *handler) decode(r *http.Request) (map[string]any, error) {
	var raw map[string]any
	dec := json.NewDecoder(io.LimitReader(r.Body, h.maxBody))
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, ErrInvalidBody
	}
	return raw, nil
}

// fail maps domain errors onto HTTP statuses.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verrs document.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: document.ErrValidation.Error(), Fields: fieldMessages(verrs)})
	case errors.Is(err, document.ErrNotFound):
		writeError(w, http.StatusNotFound, document.ErrNotFound)
	case errors.Is(err, document.ErrCast), errors.Is(err, i18n.ErrConfiguration):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, document.ErrDuplicateID):
		writeError(w, http.StatusConflict, err)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func fieldMessages(verrs document.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Path] = fe.Message
	}
	return out
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
