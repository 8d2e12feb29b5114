package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/basehub-labs/basehub/internal/auth"
	"github.com/basehub-labs/basehub/internal/registry"
	"github.com/basehub-labs/basehub/pkg/core"
	"github.com/basehub-labs/basehub/pkg/driver"
)

// sessionName is the cookie session holding the guest token.
const sessionName = "basehub_session"

// userIDKey carries the resolved user id in the request context.
type userIDKey struct{}

// Handlers provides the HTTP handlers for the registry API.
type Handlers struct {
	registry     *registry.Registry
	minter       *auth.Minter
	sessionStore sessions.Store
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(reg *registry.Registry, minter *auth.Minter, store sessions.Store, logger *slog.Logger) *Handlers {
	return &Handlers{
		registry:     reg,
		minter:       minter,
		sessionStore: store,
		logger:       logger,
	}
}

// Routes mounts all API routes on the router.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/auth/guest", h.CreateGuest)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)
		r.Post("/auth/logout", h.Logout)
		r.Post("/connections", h.CreateConnection)
		r.Get("/connections/details", h.ConnectionDetails)
		r.Get("/tables", h.ListTables)
		r.Get("/tables/{name}/exists", h.TableExists)
		r.Put("/tables/{name}/config", h.SaveTableConfig)
		r.Post("/configs", h.SaveConfig)
	})
}

// CreateGuest mints a guest session bound to the caller's network origin and
// stores the token in the cookie session.
func (h *Handlers) CreateGuest(w http.ResponseWriter, r *http.Request) {
	origin := requestOrigin(r)

	sess, err := h.registry.CreateGuestUser(origin)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cookie, _ := h.sessionStore.Get(r, sessionName)
	cookie.Values["token"] = sess.Token
	if err := cookie.Save(r, w); err != nil {
		h.logger.Warn("failed to save cookie session", "error", err)
	}

	h.writeJSON(w, http.StatusCreated, sess)
}

// Logout removes the current user and its connection from the registry and
// drops the cookie session. Idempotent.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.registry.LogUserOut(userID(r))

	cookie, _ := h.sessionStore.Get(r, sessionName)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		h.logger.Warn("failed to expire cookie session", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateConnection creates a connection for the current user and indexes it
// in the registry, replacing (and closing) any prior connection.
func (h *Handlers) CreateConnection(w http.ResponseWriter, r *http.Request) {
	var cfg core.ConnectionConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid connection config: "+err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.registry.CreateConnection(r.Context(), cfg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.registry.AddConnection(userID(r), conn)
	h.writeJSON(w, http.StatusCreated, map[string]string{"conn_id": conn.ID()})
}

// ConnectionDetails returns metadata for the current user's connection.
func (h *Handlers) ConnectionDetails(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.registry.GetConnection(userID(r))
	if !ok {
		http.Error(w, "no active connection", http.StatusNotFound)
		return
	}

	details, err := conn.Details(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, details)
}

// ListTables enumerates the tables visible to the current user's connection.
func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.registry.GetConnection(userID(r))
	if !ok {
		http.Error(w, "no active connection", http.StatusNotFound)
		return
	}

	tables, err := conn.LoadTables(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tables)
}

// TableExists reports whether the named table exists on the current
// connection.
func (h *Handlers) TableExists(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.registry.GetConnection(userID(r))
	if !ok {
		http.Error(w, "no active connection", http.StatusNotFound)
		return
	}

	name := chi.URLParam(r, "name")
	exists, err := conn.TableExists(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"table": name, "exists": exists})
}

// SaveTableConfig persists a table config for the current connection. The
// "local" query parameter selects driver-local persistence over the remote
// config store.
func (h *Handlers) SaveTableConfig(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.registry.GetConnection(userID(r))
	if !ok {
		http.Error(w, "no active connection", http.StatusNotFound)
		return
	}

	var cfg core.TableConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid table config: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := chi.URLParam(r, "name")
	saveLocal := r.URL.Query().Get("local") == "true"

	if err := conn.SaveTableConfig(r.Context(), name, cfg, saveLocal); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveConfig persists a connection config for the current user.
func (h *Handlers) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var cfg core.ConnectionConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid connection config: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.registry.SaveConfig(r.Context(), cfg, userID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequireUser resolves the caller's identity from the bearer token (or the
// cookie session) and stores it in the request context. Requests with no
// valid token get 401.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := h.sessionStore.Get(r, sessionName); err == nil {
				token, _ = cookie.Values["token"].(string)
			}
		}
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}

		identity, err := h.minter.Verify(token)
		if err != nil {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}

		ctx := contextWithUserID(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeError maps registry and driver errors onto HTTP status codes.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupported *driver.UnsupportedSourceError

	status := http.StatusBadGateway // backend/introspection faults
	switch {
	case errors.As(err, &unsupported):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, driver.ErrTableNotFound), errors.Is(err, registry.ErrUserNotFound):
		status = http.StatusNotFound
	}

	h.logger.Error("request failed",
		"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", "error", err)
	}
}

// requestOrigin extracts the caller's network address, which doubles as the
// guest user id.
func requestOrigin(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

func contextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// userID returns the identity resolved by RequireUser.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)
	return id
}
