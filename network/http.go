package network

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"treathunt/accounts"
	"treathunt/room"
	"treathunt/session"
)

// Credentials is the login collaborator; accounts.Store satisfies it.
type Credentials interface {
	CheckCredentials(username, password string) (accounts.User, error)
	RegisterUser(username, password string) (accounts.User, error)
}

type Options struct {
	Coordinator *session.Coordinator
	Rooms       *room.Registry
	Accounts    Credentials
	StaticDir   string // served for unmatched paths when set
	SendBuffer  int
	Logger      *slog.Logger
}

// NewRouter wires every HTTP route:
//   - GET  /ws      websocket session (?codec=json|msgpack)
//   - GET  /rooms   joinable rooms (?all=true for every room)
//   - POST /login   credential check
//   - POST /signup  account creation
//   - GET  /healthz liveness
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	api := &api{rooms: opts.Rooms, accounts: opts.Accounts, log: logger}
	ws := newWSHandler(opts.Coordinator, opts.SendBuffer, logger)

	mux := httprouter.New()
	mux.GET("/ws", ws.serve)
	mux.GET("/rooms", api.listRooms)
	mux.POST("/login", api.login)
	mux.POST("/signup", api.signup)
	mux.GET("/healthz", api.health)
	if opts.StaticDir != "" {
		mux.NotFound = http.FileServer(http.Dir(opts.StaticDir))
	}
	return withCORS(mux)
}

type api struct {
	rooms    *room.Registry
	accounts Credentials
	log      *slog.Logger
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *api) listRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if r.URL.Query().Get("all") == "true" {
		writeJSON(w, http.StatusOK, a.rooms.ListRooms())
		return
	}
	writeJSON(w, http.StatusOK, a.rooms.Lobby())
}

func (a *api) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, err := a.accounts.CheckCredentials(req.Username, req.Password)
	if errors.Is(err, accounts.ErrInvalidCredentials) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		a.log.Error("login failed", "username", req.Username, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *api) signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	_, err := a.accounts.RegisterUser(req.Username, req.Password)
	switch {
	case errors.Is(err, accounts.ErrUsernameTaken):
		http.Error(w, "Username already exists", http.StatusConflict)
	case errors.Is(err, accounts.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		a.log.Error("signup failed", "username", req.Username, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		a.log.Info("user registered", "username", req.Username)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
	}
}

func (a *api) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rooms": a.rooms.Len()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
