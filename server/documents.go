package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"caret/editor"
	"caret/render"
	"caret/store"
)

func (h *handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.st.Documents(r.Context())
	if err != nil {
		h.log.Error("Unable to list documents", zap.Error(err))
		http.Error(w, "unable to list documents", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *handler) createDocument(w http.ResponseWriter, r *http.Request) {
	var doc editor.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid document body", http.StatusBadRequest)
		return
	}

	saved, err := h.st.SaveDocument(r.Context(), doc)
	if err != nil {
		h.log.Error("Unable to save document", zap.Error(err))
		http.Error(w, "unable to save document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *handler) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.st.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		h.log.Error("Unable to load document", zap.Error(err))
		http.Error(w, "unable to load document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.st.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		h.log.Error("Unable to delete document", zap.Error(err))
		http.Error(w, "unable to delete document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// documentHTML serves the same standalone page the render command writes.
func (h *handler) documentHTML(w http.ResponseWriter, r *http.Request) {
	doc, err := h.st.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		h.log.Error("Unable to load document", zap.Error(err))
		http.Error(w, "unable to load document", http.StatusInternalServerError)
		return
	}

	ed := editor.New(h.env.Cfg, h.log)
	if err := ed.Load(*doc); err != nil {
		h.log.Error("Unable to load document", zap.String("id", doc.ID), zap.Error(err))
		http.Error(w, "unable to render document", http.StatusInternalServerError)
		return
	}
	page, err := render.Page(ed, h.env, h.spl)
	if err != nil {
		h.log.Error("Unable to render document", zap.String("id", doc.ID), zap.Error(err))
		http.Error(w, "unable to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (h *handler) getIcon(w http.ResponseWriter, r *http.Request) {
	data, ok := h.env.Icons[chi.URLParam(r, "name")]
	if !ok {
		http.Error(w, "icon not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
