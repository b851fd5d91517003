package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestRateLimiter(generalBurst, loginBurst int) *RateLimiter {
	return NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0 / 60.0), // 補充をほぼ無効化
		GeneralBurst:    generalBurst,
		LoginRate:       rate.Limit(1.0 / 60.0),
		LoginBurst:      loginBurst,
		CleanupInterval: time.Hour,
	})
}

// バースト超過で429とRetry-Afterが返ることを検証
func TestRateLimiter_General_Exceeded(t *testing.T) {
	rl := newTestRateLimiter(2, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/jobs/a@x.com", nil)
		req = req.WithContext(ContextWithEmail(req.Context(), "a@x.com"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%d回目: status = %d, want 200", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/jobs/a@x.com", nil)
	req = req.WithContext(ContextWithEmail(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-Afterヘッダーが設定されていない")
	}
}

// メールアドレスごとに独立したリミッターが使われることを検証
func TestRateLimiter_General_PerEmail(t *testing.T) {
	rl := newTestRateLimiter(1, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// a@x.com のバーストを使い切る
	req := httptest.NewRequest(http.MethodGet, "/jobs/a@x.com", nil)
	req = req.WithContext(ContextWithEmail(req.Context(), "a@x.com"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// b@x.com は影響を受けない
	req = httptest.NewRequest(http.MethodGet, "/jobs/b@x.com", nil)
	req = req.WithContext(ContextWithEmail(req.Context(), "b@x.com"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if rl.GeneralLimiterCount() != 2 {
		t.Errorf("limiter数 = %d, want 2", rl.GeneralLimiterCount())
	}
}

// 未認証コンテキストでGeneralMiddlewareが401を返すことを検証
func TestRateLimiter_General_Unauthenticated(t *testing.T) {
	rl := newTestRateLimiter(10, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/a@x.com", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// ログインリミッターがIP単位で制限することを検証
func TestRateLimiter_Login_PerIP(t *testing.T) {
	rl := newTestRateLimiter(10, 1)
	defer rl.Stop()

	handler := rl.LoginMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/jwt", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("1回目: status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/jwt", nil)
	req.RemoteAddr = "203.0.113.7:51235" // 同一IP、別ポート
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("2回目: status = %d, want 429", w.Code)
	}

	// 別IPは独立
	req = httptest.NewRequest(http.MethodPost, "/jwt", nil)
	req.RemoteAddr = "198.51.100.1:40000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("別IP: status = %d, want 200", w.Code)
	}
}

// cleanupが期限切れエントリを削除することを検証
func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     1,
		GeneralBurst:    1,
		LoginRate:       1,
		LoginBurst:      1,
		CleanupInterval: time.Millisecond,
	})
	defer rl.Stop()

	rl.getOrCreate(&rl.generalMu, rl.generalLimiters, "a@x.com", 1, 1)
	if rl.GeneralLimiterCount() != 1 {
		t.Fatalf("limiter数 = %d, want 1", rl.GeneralLimiterCount())
	}

	// lastAccessを過去に移動させてクリーンアップ対象にする
	rl.generalMu.Lock()
	rl.generalLimiters["a@x.com"].lastAccess = time.Now().Add(-time.Hour)
	rl.generalMu.Unlock()

	rl.cleanup()

	if rl.GeneralLimiterCount() != 0 {
		t.Errorf("limiter数 = %d, want 0", rl.GeneralLimiterCount())
	}
}
