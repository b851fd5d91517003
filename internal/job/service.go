// Package job は求人管理のドメインロジックを提供する。
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/careerfy/internal/model"
	"github.com/hitoshi/careerfy/internal/repository"
	"github.com/hitoshi/careerfy/internal/security"
)

// MetricsRecorder は求人操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordJobCreated()
	RecordJobDeleted()
}

// CreateInput は求人作成の入力。
type CreateInput struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	SalaryRange string `json:"salary_range"`
	BannerURL   string `json:"banner_url"`
	PostingDate string `json:"posting_date"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

// UpdateInput は求人更新の入力。
type UpdateInput struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	SalaryRange string `json:"salary_range"`
	BannerURL   string `json:"banner_url"`
	PostingDate string `json:"posting_date"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

// Service は求人管理のサービス層。
// 求人の取得、作成、更新、削除と所有権チェックのビジネスロジックを提供する。
type Service struct {
	jobs      repository.JobRepository
	sanitizer security.DescriptionSanitizerService
	metrics   MetricsRecorder
	timeNow   func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(jobs repository.JobRepository, sanitizer security.DescriptionSanitizerService, metrics MetricsRecorder) *Service {
	return &Service{
		jobs:      jobs,
		sanitizer: sanitizer,
		metrics:   metrics,
		timeNow:   time.Now,
	}
}

// List は全求人を返す。
func (s *Service) List(ctx context.Context) ([]*model.Job, error) {
	jobs, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}

	return jobs, nil
}

// Get は指定IDの求人を返す。見つからない場合は(nil, nil)を返す。
// ID形式が不正な場合はINVALID_JOB_IDエラーを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.NewInvalidJobIDError(id)
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}

	return job, nil
}

// ListByOwner は指定オーナーの求人一覧を返す。
func (s *Service) ListByOwner(ctx context.Context, email string) ([]*model.Job, error) {
	jobs, err := s.jobs.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("オーナー求人一覧の取得に失敗しました: %w", err)
	}

	return jobs, nil
}

// Create は求人を作成する。
// 入力のemailは認証済みメールアドレスと一致しなければならない。
// 説明文は保存前にサニタイズされる。
func (s *Service) Create(ctx context.Context, ownerEmail string, input *CreateInput) (*model.InsertResult, error) {
	if input.Email == "" {
		return nil, model.NewEmailRequiredError()
	}
	if input.Email != ownerEmail {
		return nil, model.NewForbiddenError()
	}

	now := s.timeNow()
	job := &model.Job{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Name:        input.Name,
		Email:       input.Email,
		Category:    input.Category,
		SalaryRange: input.SalaryRange,
		BannerURL:   input.BannerURL,
		PostingDate: input.PostingDate,
		Deadline:    input.Deadline,
		Description: s.sanitizer.Sanitize(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	s.metrics.RecordJobCreated()

	return &model.InsertResult{InsertedID: job.ID}, nil
}

// Update は求人の全フィールドを更新する。
// 保存済みオーナーと認証済みメールアドレスが一致しない場合はFORBIDDENを返す。
func (s *Service) Update(ctx context.Context, id, ownerEmail string, input *UpdateInput) (*model.UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.NewInvalidJobIDError(id)
	}

	existing, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewJobNotFoundError(id)
	}
	if existing.Email != ownerEmail {
		return nil, model.NewForbiddenError()
	}

	updated := &model.Job{
		ID:              id,
		Title:           input.Title,
		Name:            input.Name,
		Email:           existing.Email,
		Category:        input.Category,
		SalaryRange:     input.SalaryRange,
		BannerURL:       input.BannerURL,
		ApplicantNumber: existing.ApplicantNumber,
		PostingDate:     input.PostingDate,
		Deadline:        input.Deadline,
		Description:     s.sanitizer.Sanitize(input.Description),
		UpdatedAt:       s.timeNow(),
	}

	rows, err := s.jobs.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("求人の更新に失敗しました: %w", err)
	}

	return &model.UpdateResult{MatchedCount: rows, ModifiedCount: rows}, nil
}

// UpdateApplicantNumber は応募者数を指定値に更新する。
// 対象が存在しない場合はJOB_NOT_FOUNDを返す。
func (s *Service) UpdateApplicantNumber(ctx context.Context, id string, applicantNumber int) (*model.UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.NewInvalidJobIDError(id)
	}

	rows, err := s.jobs.UpdateApplicantNumber(ctx, id, applicantNumber)
	if err != nil {
		return nil, fmt.Errorf("応募者数の更新に失敗しました: %w", err)
	}
	if rows == 0 {
		return nil, model.NewJobNotFoundError(id)
	}

	return &model.UpdateResult{MatchedCount: rows, ModifiedCount: rows}, nil
}

// Delete は求人を削除する。
// 対象が存在しない場合はDeletedCount=0で正常に返る（冪等）。
// 保存済みオーナーと認証済みメールアドレスが一致しない場合はFORBIDDENを返す。
func (s *Service) Delete(ctx context.Context, id, ownerEmail string) (*model.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.NewInvalidJobIDError(id)
	}

	existing, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if existing == nil {
		return &model.DeleteResult{DeletedCount: 0}, nil
	}
	if existing.Email != ownerEmail {
		return nil, model.NewForbiddenError()
	}

	rows, err := s.jobs.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("求人の削除に失敗しました: %w", err)
	}

	if rows > 0 {
		s.metrics.RecordJobDeleted()
	}

	return &model.DeleteResult{DeletedCount: rows}, nil
}
