package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/gate"
	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/db"
	"github.com/urbangear/retail-app/internal/models"
)

// AuthHandler owns login, logout, session introspection and the demo
// reinitialization endpoint.
type AuthHandler struct {
	DB    *gorm.DB
	Store *assets.Store
}

func NewAuthHandler(dbConn *gorm.DB, store *assets.Store) *AuthHandler {
	return &AuthHandler{DB: dbConn, Store: store}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
	mux.HandleFunc("/session", h.session)
	mux.HandleFunc("/reinit", h.reinit)
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccountID   uint     `json:"account_id"`
	Username    string   `json:"username,omitempty"`
	FullName    string   `json:"full_name,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func permissionStrings(s gate.Set) []string {
	perms := s.Permissions()
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	var in loginInput
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in.Username = r.FormValue("username")
		in.Password = r.FormValue("password")
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_credentials", nil)
		return
	}

	var account models.Account
	err := h.DB.Where("username = ?", in.Username).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && account.PassHash != auth.Digest(in.Password)) {
		// One message for both unknown user and wrong password.
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	auth.CreateSession(w, account.ID, account.RoleCode)
	perms := gate.ForRole(account.RoleCode)
	httpx.JSON(w, http.StatusOK, sessionResponse{
		AccountID:   account.ID,
		Username:    account.Username,
		FullName:    account.FullName,
		Role:        perms.Role(),
		Permissions: permissionStrings(perms),
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session reports the current identity; guests get the guest permission
// set rather than an error so clients can build their UI from one call.
func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	s := auth.SessionFrom(r.Context())
	resp := sessionResponse{
		AccountID:   s.AccountID,
		Role:        s.Perms.Role(),
		Permissions: permissionStrings(s.Perms),
	}
	if s.AccountID != 0 {
		var account models.Account
		if err := h.DB.First(&account, s.AccountID).Error; err == nil {
			resp.Username = account.Username
			resp.FullName = account.FullName
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// reinit re-runs the idempotent seed and asset bootstrap. Open like the
// rest of the demo data lifecycle; it never wipes existing rows.
func (h *AuthHandler) reinit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	if err := h.Store.Bootstrap(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "asset_bootstrap_failed", nil)
		return
	}
	if err := db.Seed(h.DB); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "seed_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
