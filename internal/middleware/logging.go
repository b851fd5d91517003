package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// principalContextKey はリクエストコンテキストにprincipalHolderを格納するためのキー。
var principalContextKey = contextKey("principal")

// principalHolder は下流で確定した認証主体を上流のロギングミドルウェアへ伝える。
// コンテキストの値は派生リクエストにしか伝播しないため、
// ロギングミドルウェアがホルダーを先に仕込み、認証ミドルウェアがポインタ経由で書き込む。
type principalHolder struct {
	email string
}

// storePrincipal はコンテキスト内のprincipalHolderに認証済みメールアドレスを記録する。
// ホルダーが存在しない場合（ロギングミドルウェアを経由しないテスト等）は何もしない。
func storePrincipal(ctx context.Context, email string) {
	if holder, ok := ctx.Value(principalContextKey).(*principalHolder); ok {
		holder.email = email
	}
}

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはmethod、path、status、duration_ms、email（認証済みの場合）を含む。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			holder := &principalHolder{}
			ctx := context.WithValue(r.Context(), principalContextKey, holder)

			next.ServeHTTP(rec, r.WithContext(ctx))

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			}

			// 認証ミドルウェアがホルダーに書き込んだメールアドレスを追加。
			// リクエスト到着時点でコンテキストに含まれていた場合も拾う。
			email := holder.email
			if email == "" {
				if e, err := EmailFromContext(r.Context()); err == nil {
					email = e
				}
			}
			if email != "" {
				attrs = append(attrs, slog.String("email", email))
			}

			// slogのログレベルをステータスコードに応じて変更
			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			args := make([]any, len(attrs))
			for i, attr := range attrs {
				args[i] = attr
			}

			logger.Log(r.Context(), level, "http_request", args...)
		})
	}
}
