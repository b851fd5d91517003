package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/careerfy/internal/model"
)

// mockJobRepo はJobRepositoryのモック。
type mockJobRepo struct {
	findAllFunc               func(ctx context.Context) ([]*model.Job, error)
	findByIDFunc              func(ctx context.Context, id string) (*model.Job, error)
	listByEmailFunc           func(ctx context.Context, email string) ([]*model.Job, error)
	createFunc                func(ctx context.Context, job *model.Job) error
	updateFunc                func(ctx context.Context, job *model.Job) (int64, error)
	updateApplicantNumberFunc func(ctx context.Context, id string, n int) (int64, error)
	deleteByIDFunc            func(ctx context.Context, id string) (int64, error)
}

func (m *mockJobRepo) FindAll(ctx context.Context) ([]*model.Job, error) {
	return m.findAllFunc(ctx)
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockJobRepo) ListByEmail(ctx context.Context, email string) ([]*model.Job, error) {
	return m.listByEmailFunc(ctx, email)
}

func (m *mockJobRepo) Create(ctx context.Context, job *model.Job) error {
	return m.createFunc(ctx, job)
}

func (m *mockJobRepo) Update(ctx context.Context, job *model.Job) (int64, error) {
	return m.updateFunc(ctx, job)
}

func (m *mockJobRepo) UpdateApplicantNumber(ctx context.Context, id string, n int) (int64, error) {
	return m.updateApplicantNumberFunc(ctx, id, n)
}

func (m *mockJobRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	return m.deleteByIDFunc(ctx, id)
}

// mockSanitizer は入力をそのまま返すサニタイザーのモック。
type mockSanitizer struct {
	calls []string
}

func (m *mockSanitizer) Sanitize(rawHTML string) string {
	m.calls = append(m.calls, rawHTML)
	return rawHTML
}

// mockMetrics はMetricsRecorderのモック。
type mockMetrics struct {
	created int
	deleted int
}

func (m *mockMetrics) RecordJobCreated() { m.created++ }
func (m *mockMetrics) RecordJobDeleted() { m.deleted++ }

func newTestService(repo *mockJobRepo) (*Service, *mockSanitizer, *mockMetrics) {
	sanitizer := &mockSanitizer{}
	metrics := &mockMetrics{}
	svc := NewService(repo, sanitizer, metrics)
	svc.timeNow = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, sanitizer, metrics
}

// 不正なUUIDでINVALID_JOB_IDが返ることを検証
func TestGet_InvalidID(t *testing.T) {
	svc, _, _ := newTestService(&mockJobRepo{})

	_, err := svc.Get(context.Background(), "not-a-uuid")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("APIErrorが返るべき: %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidJobID {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidJobID)
	}
}

// 存在しない求人で(nil, nil)が返ることを検証
func TestGet_NotFound(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return nil, nil
		},
	}
	svc, _, _ := newTestService(repo)

	job, err := svc.Get(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if job != nil {
		t.Errorf("job = %v, want nil", job)
	}
}

// 作成時にIDが採番され、説明文がサニタイズされることを検証
func TestCreate_SanitizesAndAssignsID(t *testing.T) {
	var saved *model.Job
	repo := &mockJobRepo{
		createFunc: func(ctx context.Context, job *model.Job) error {
			saved = job
			return nil
		},
	}
	svc, sanitizer, metrics := newTestService(repo)

	result, err := svc.Create(context.Background(), "a@x.com", &CreateInput{
		Title:       "Frontend Engineer",
		Email:       "a@x.com",
		Description: "<p>仕事内容</p>",
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if saved == nil {
		t.Fatal("求人が保存されていない")
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("IDがUUID形式でない: %q", saved.ID)
	}
	if result.InsertedID != saved.ID {
		t.Errorf("InsertedID = %q, want %q", result.InsertedID, saved.ID)
	}
	if len(sanitizer.calls) != 1 || sanitizer.calls[0] != "<p>仕事内容</p>" {
		t.Errorf("サニタイザーが説明文に対して呼ばれていない: %v", sanitizer.calls)
	}
	if metrics.created != 1 {
		t.Errorf("created = %d, want 1", metrics.created)
	}
	if saved.CreatedAt != saved.UpdatedAt {
		t.Errorf("作成時はCreatedAtとUpdatedAtが一致するべき")
	}
}

// emailが空の作成リクエストでEMAIL_REQUIREDが返ることを検証
func TestCreate_EmailRequired(t *testing.T) {
	svc, _, _ := newTestService(&mockJobRepo{})

	_, err := svc.Create(context.Background(), "a@x.com", &CreateInput{Title: "t"})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeEmailRequired {
		t.Errorf("EMAIL_REQUIREDが返るべき: %v", err)
	}
}

// 入力emailが認証済みメールと異なる場合にFORBIDDENが返ることを検証
func TestCreate_EmailMismatch_Forbidden(t *testing.T) {
	svc, _, metrics := newTestService(&mockJobRepo{})

	_, err := svc.Create(context.Background(), "a@x.com", &CreateInput{
		Title: "t",
		Email: "b@x.com",
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Errorf("FORBIDDENが返るべき: %v", err)
	}
	if metrics.created != 0 {
		t.Errorf("失敗時にメトリクスが記録された")
	}
}

// 更新時に保存済みオーナーのチェックが行われることを検証
func TestUpdate_StoredOwnerMismatch_Forbidden(t *testing.T) {
	id := uuid.NewString()
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, jobID string) (*model.Job, error) {
			return &model.Job{ID: jobID, Email: "owner@x.com"}, nil
		},
	}
	svc, _, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), id, "attacker@x.com", &UpdateInput{Title: "t"})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Errorf("FORBIDDENが返るべき: %v", err)
	}
}

// 存在しない求人の更新でJOB_NOT_FOUNDが返ることを検証
func TestUpdate_NotFound(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return nil, nil
		},
	}
	svc, _, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), uuid.NewString(), "a@x.com", &UpdateInput{})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeJobNotFound {
		t.Errorf("JOB_NOT_FOUNDが返るべき: %v", err)
	}
}

// 更新時にオーナーと応募者数が保持されることを検証
func TestUpdate_PreservesOwnerAndApplicantNumber(t *testing.T) {
	id := uuid.NewString()
	var updated *model.Job
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, jobID string) (*model.Job, error) {
			return &model.Job{ID: jobID, Email: "owner@x.com", ApplicantNumber: 7}, nil
		},
		updateFunc: func(ctx context.Context, job *model.Job) (int64, error) {
			updated = job
			return 1, nil
		},
	}
	svc, _, _ := newTestService(repo)

	result, err := svc.Update(context.Background(), id, "owner@x.com", &UpdateInput{
		Title: "新タイトル",
		Name:  "新社名",
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if updated.Email != "owner@x.com" {
		t.Errorf("email = %q, オーナーは更新で変更されないべき", updated.Email)
	}
	if updated.ApplicantNumber != 7 {
		t.Errorf("applicant_number = %d, want 7", updated.ApplicantNumber)
	}
	if result.MatchedCount != 1 || result.ModifiedCount != 1 {
		t.Errorf("result = %+v, want matched=1 modified=1", result)
	}
}

// 応募者数更新で影響行数0の場合にJOB_NOT_FOUNDが返ることを検証
func TestUpdateApplicantNumber_NotFound(t *testing.T) {
	repo := &mockJobRepo{
		updateApplicantNumberFunc: func(ctx context.Context, id string, n int) (int64, error) {
			return 0, nil
		},
	}
	svc, _, _ := newTestService(repo)

	_, err := svc.UpdateApplicantNumber(context.Background(), uuid.NewString(), 3)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeJobNotFound {
		t.Errorf("JOB_NOT_FOUNDが返るべき: %v", err)
	}
}

// 応募者数更新が成功することを検証
func TestUpdateApplicantNumber_Success(t *testing.T) {
	var gotN int
	repo := &mockJobRepo{
		updateApplicantNumberFunc: func(ctx context.Context, id string, n int) (int64, error) {
			gotN = n
			return 1, nil
		},
	}
	svc, _, _ := newTestService(repo)

	result, err := svc.UpdateApplicantNumber(context.Background(), uuid.NewString(), 5)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if gotN != 5 {
		t.Errorf("applicantNumber = %d, want 5", gotN)
	}
	if result.ModifiedCount != 1 {
		t.Errorf("ModifiedCount = %d, want 1", result.ModifiedCount)
	}
}

// 存在しない求人の削除でDeletedCount=0が返ることを検証（冪等）
func TestDelete_Missing_Idempotent(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return nil, nil
		},
	}
	svc, _, metrics := newTestService(repo)

	result, err := svc.Delete(context.Background(), uuid.NewString(), "a@x.com")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", result.DeletedCount)
	}
	if metrics.deleted != 0 {
		t.Errorf("削除なしでメトリクスが記録された")
	}
}

// 他人の求人の削除でFORBIDDENが返ることを検証
func TestDelete_OwnerMismatch_Forbidden(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return &model.Job{ID: id, Email: "owner@x.com"}, nil
		},
	}
	svc, _, _ := newTestService(repo)

	_, err := svc.Delete(context.Background(), uuid.NewString(), "attacker@x.com")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Errorf("FORBIDDENが返るべき: %v", err)
	}
}

// 自分の求人の削除が成功し、メトリクスが記録されることを検証
func TestDelete_Success(t *testing.T) {
	id := uuid.NewString()
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, jobID string) (*model.Job, error) {
			return &model.Job{ID: jobID, Email: "owner@x.com"}, nil
		},
		deleteByIDFunc: func(ctx context.Context, jobID string) (int64, error) {
			return 1, nil
		},
	}
	svc, _, metrics := newTestService(repo)

	result, err := svc.Delete(context.Background(), id, "owner@x.com")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", result.DeletedCount)
	}
	if metrics.deleted != 1 {
		t.Errorf("deleted = %d, want 1", metrics.deleted)
	}
}
