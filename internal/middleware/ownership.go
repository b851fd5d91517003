package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/careerfy/internal/model"
)

// NewOwnershipMiddleware はリクエスト対象のメールアドレスと
// 認証済みメールアドレスの完全一致を検証するミドルウェアを返す。
// targetEmailはルートごとの対象メール取得関数（パスパラメータまたはクエリ）。
//
// 認証ミドルウェアの後段に配置すること。未認証リクエストには403ではなく
// 401を返す（403を先に返すと存在するメールアドレスの情報が漏れる）。
// 不一致は403 Forbiddenで終端し、データストアにはアクセスしない。
func NewOwnershipMiddleware(targetEmail func(r *http.Request) string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := EmailFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			requested := targetEmail(r)
			if requested == "" || requested != email {
				slog.Warn("ownership check failed",
					slog.String("path", r.URL.Path),
					slog.String("requested_email", requested),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
