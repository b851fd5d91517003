package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/careerfy/internal/model"
	"github.com/hitoshi/careerfy/internal/session"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Login(ctx context.Context, email string) (string, error)
}

// AuthHandler はセッショントークンの発行と破棄のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	cookies *session.Cookies
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, cookies *session.Cookies) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
	}
}

// loginRequest はトークン発行リクエストのボディ。
type loginRequest struct {
	Email string `json:"email"`
}

// Login はセッショントークンを発行してCookieに設定する。
// POST /jwt
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError())
		return
	}

	token, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.cookies.Attach(w, token)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout はセッションCookieを即時破棄する。
// トークン自体の無効化は行わない（Cookie削除のみ）。
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
