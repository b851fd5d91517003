// Package application は求人応募のドメインロジックを提供する。
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/careerfy/internal/model"
	"github.com/hitoshi/careerfy/internal/repository"
)

// MetricsRecorder は応募操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordApplicationCreated()
}

// Service は応募管理のサービス層。
// 応募フォームはスキーマレスであり、受信したJSONオブジェクトをそのまま保存する。
type Service struct {
	applications repository.ApplicationRepository
	metrics      MetricsRecorder
	timeNow      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(applications repository.ApplicationRepository, metrics MetricsRecorder) *Service {
	return &Service{
		applications: applications,
		metrics:      metrics,
		timeNow:      time.Now,
	}
}

// Create は応募を作成する。
// payloadはJSONオブジェクトでなければならない。
// payload内のemailフィールド（文字列）があれば応募者メールとして抽出する。
func (s *Service) Create(ctx context.Context, payload json.RawMessage) (*model.InsertResult, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, model.NewInvalidRequestError()
	}

	email := ""
	if v, ok := fields["email"].(string); ok {
		email = v
	}

	app := &model.Application{
		ID:        uuid.NewString(),
		Email:     email,
		Payload:   payload,
		CreatedAt: s.timeNow(),
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("応募の作成に失敗しました: %w", err)
	}

	s.metrics.RecordApplicationCreated()

	return &model.InsertResult{InsertedID: app.ID}, nil
}

// ListByOwner は指定応募者の応募一覧を返す。
func (s *Service) ListByOwner(ctx context.Context, email string) ([]*model.Application, error) {
	apps, err := s.applications.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}

	return apps, nil
}
