// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hitoshi/careerfy/internal/model"
	"github.com/hitoshi/careerfy/internal/token"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// emailContextKey はリクエストコンテキストに認証済みメールアドレスを格納するためのキー。
var emailContextKey = contextKey("email")

// TokenExtractor はリクエストからトークンを取り出すインターフェース。
// session.Cookiesの部分集合として定義する。
type TokenExtractor interface {
	Extract(r *http.Request) (string, bool)
}

// TokenVerifier はトークンを検証するインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (*model.Claims, error)
}

// AuthMetrics は認証結果のメトリクス記録インターフェース。
type AuthMetrics interface {
	RecordAuthSuccess()
	RecordAuthFailure(reason string)
}

// NewAuthMiddleware はCookieからセッショントークンを読み取り検証するミドルウェアを返す。
// 検証済みメールアドレスをリクエストコンテキストに注入する。
// トークン欠落・署名不一致・期限切れはいずれも401 Unauthorizedで終端し、
// 後続ハンドラーは呼び出されない（データストアには一切アクセスしない）。
func NewAuthMiddleware(extractor TokenExtractor, verifier TokenVerifier, metrics AuthMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得
			tokenString, ok := extractor.Extract(r)
			if !ok {
				metrics.RecordAuthFailure("missing_token")
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. 署名と有効期限を検証
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				reason := "invalid_signature"
				if errors.Is(err, token.ErrExpired) {
					reason = "expired"
				}
				metrics.RecordAuthFailure(reason)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みメールアドレスをコンテキストに注入
			// ロギングミドルウェアは派生コンテキストを観測できないため、
			// ホルダーにも書き込んでリクエストログにemailを載せる
			metrics.RecordAuthSuccess()
			storePrincipal(r.Context(), claims.Email)
			ctx := context.WithValue(r.Context(), emailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext はリクエストコンテキストから認証済みメールアドレスを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func EmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(emailContextKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("email not found in context")
	}
	return email, nil
}

// ContextWithEmail はコンテキストに認証済みメールアドレスを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey, email)
}
