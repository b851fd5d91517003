// Package session はセッショントークンのCookieによる受け渡しを提供する。
package session

import "net/http"

// CookieName はセッショントークンを保持するCookieの名前。
const CookieName = "token"

// Config はセッションCookieの属性設定。
// 本番環境ではSecure=trueと明示的なSameSiteを設定すること。
type Config struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int // 秒
}

// Cookies はセッションCookieの発行・読み取り・破棄を行う。
// Cookieは常にHttpOnlyであり、クライアントスクリプトから読み取れない。
type Cookies struct {
	config Config
}

// NewCookies はCookiesを生成する。
func NewCookies(config Config) *Cookies {
	return &Cookies{config: config}
}

// Attach はレスポンスにセッショントークンCookieを設定する。
func (c *Cookies) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.config.Domain,
		MaxAge:   c.config.MaxAge,
		HttpOnly: true,
		Secure:   c.config.Secure,
		SameSite: c.config.SameSite,
	})
}

// Extract はリクエストからセッショントークンを読み取る。
// Cookieが存在しないか空の場合はfalseを返す。
func (c *Cookies) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear はセッションCookieを即時破棄する。
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.config.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.config.Secure,
		SameSite: c.config.SameSite,
	})
}
