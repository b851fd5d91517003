package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/careerfy/internal/metrics"
	"github.com/hitoshi/careerfy/internal/middleware"
	"github.com/hitoshi/careerfy/internal/session"
)

// livenessMessage はルートパスで返す稼働確認メッセージ。
const livenessMessage = "Careerfy server is running..."

// HealthChecker はヘルスチェックが必要とするデータベース接続のインターフェース。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger *slog.Logger

	// ヘルスチェック・メトリクス
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// ミドルウェア依存
	TokenVerifier  middleware.TokenVerifier
	Cookies        *session.Cookies
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	HTTPMetrics    middleware.HTTPMetrics
	AuthMetrics    middleware.AuthMetrics

	// サービス
	AuthService        AuthServiceInterface
	JobService         JobServiceInterface
	ApplicationService ApplicationServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 保護ルートはさらに Auth → RateLimit(General) を通過する。
// 認可の判定順序は認証が先であり、未認証リクエストは常に401で終端する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.AllowedOrigins))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.Cookies)
	jobHandler := NewJobHandler(deps.JobService)
	appHandler := NewApplicationHandler(deps.ApplicationService)

	// --- 認証不要のルート ---

	// 稼働確認
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(livenessMessage))
	})

	// ヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.HealthChecker.PingContext(r.Context()); err != nil {
			deps.Logger.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheusスクレイプ
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	// セッション管理（ログインのみIP単位のレート制限を追加）
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/jwt", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// 公開の求人閲覧
	r.Get("/jobs", jobHandler.List)
	r.Get("/job-details/{id}", jobHandler.Details)
	r.Get("/update-job/{id}", jobHandler.GetForUpdate)

	// 応募の作成は未ログインでも可能
	r.Post("/applied-jobs", appHandler.Create)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Cookies, deps.TokenVerifier, deps.AuthMetrics))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// オーナー別の求人一覧（パスのメールアドレスと認証主体の一致を要求）
		r.With(middleware.NewOwnershipMiddleware(func(r *http.Request) string {
			return chi.URLParam(r, "key")
		})).Get("/jobs/{key}", jobHandler.ListByOwner)

		// 求人の作成・更新・削除
		r.Post("/jobs", jobHandler.Create)
		r.Put("/jobs/{key}", jobHandler.Update)
		r.Delete("/jobs/{key}", jobHandler.Delete)

		// 応募者数の更新（応募者が他オーナーの求人を更新するため認証のみ）
		r.Patch("/applicant-number/{id}", jobHandler.UpdateApplicantNumber)

		// 応募者別の応募一覧（クエリのメールアドレスと認証主体の一致を要求）
		r.With(middleware.NewOwnershipMiddleware(func(r *http.Request) string {
			return r.URL.Query().Get("email")
		})).Get("/applied-jobs", appHandler.ListByOwner)
	})

	return r
}
