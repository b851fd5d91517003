// Package auth はログインセッションの発行と破棄のドメインロジックを提供する。
package auth

import (
	"context"
	"fmt"

	"github.com/hitoshi/careerfy/internal/model"
)

// TokenIssuer は署名付きトークンの発行インターフェース。
type TokenIssuer interface {
	// Issue は指定メールアドレスを主体とするトークンを発行する。
	Issue(email string) (string, error)
}

// MetricsRecorder はログイン操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordLogin()
}

// Service は認証セッションのサービス層。
// パスワード検証は行わず、提示されたメールアドレスをそのまま主体としてトークンを発行する。
// 本人確認は外部IdP（フロントエンドのFirebase認証）で完了している前提。
type Service struct {
	issuer  TokenIssuer
	metrics MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(issuer TokenIssuer, metrics MetricsRecorder) *Service {
	return &Service{
		issuer:  issuer,
		metrics: metrics,
	}
}

// Login は指定メールアドレスのセッショントークンを発行する。
// メールアドレスが空の場合はEMAIL_REQUIREDを返す。
func (s *Service) Login(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", model.NewEmailRequiredError()
	}

	token, err := s.issuer.Issue(email)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	s.metrics.RecordLogin()

	return token, nil
}
