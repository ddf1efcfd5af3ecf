package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `json:"usuario"`
	Password string `json:"clave"`
}

// POST /api/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	role, err := h.svc.Users.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"rol": role})
}

// GET /api/usuarios
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Users.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type userBody struct {
	Username string  `json:"usuario"`
	Password *string `json:"clave"`
	Role     *string `json:"rol"`
	Active   any     `json:"activo"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// POST /api/usuarios
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body userBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Users.Create(r.Context(), body.Username, deref(body.Password), deref(body.Role)); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("user created", zap.String("usuario", body.Username))
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/usuarios/{usuario}
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var body userBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	username := chi.URLParam(r, "usuario")
	if err := h.svc.Users.Update(r.Context(), username, body.Password, body.Role, body.Active); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
