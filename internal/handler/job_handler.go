package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/careerfy/internal/job"
	"github.com/hitoshi/careerfy/internal/middleware"
	"github.com/hitoshi/careerfy/internal/model"
)

// JobServiceInterface は求人ハンドラーが必要とするサービスインターフェース。
type JobServiceInterface interface {
	List(ctx context.Context) ([]*model.Job, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	ListByOwner(ctx context.Context, email string) ([]*model.Job, error)
	Create(ctx context.Context, ownerEmail string, input *job.CreateInput) (*model.InsertResult, error)
	Update(ctx context.Context, id, ownerEmail string, input *job.UpdateInput) (*model.UpdateResult, error)
	UpdateApplicantNumber(ctx context.Context, id string, applicantNumber int) (*model.UpdateResult, error)
	Delete(ctx context.Context, id, ownerEmail string) (*model.DeleteResult, error)
}

// JobHandler は求人管理のHTTPハンドラー。
type JobHandler struct {
	service JobServiceInterface
}

// NewJobHandler はJobHandlerを生成する。
func NewJobHandler(service JobServiceInterface) *JobHandler {
	return &JobHandler{service: service}
}

// jobResponse は求人のAPIレスポンス表現。
type jobResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Category        string    `json:"category"`
	SalaryRange     string    `json:"salary_range"`
	BannerURL       string    `json:"banner_url"`
	ApplicantNumber int       `json:"applicant_number"`
	PostingDate     string    `json:"posting_date"`
	Deadline        string    `json:"deadline"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toJobResponse(j *model.Job) jobResponse {
	return jobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Name:            j.Name,
		Email:           j.Email,
		Category:        j.Category,
		SalaryRange:     j.SalaryRange,
		BannerURL:       j.BannerURL,
		ApplicantNumber: j.ApplicantNumber,
		PostingDate:     j.PostingDate,
		Deadline:        j.Deadline,
		Description:     j.Description,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobResponses(jobs []*model.Job) []jobResponse {
	responses := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		responses[i] = toJobResponse(j)
	}
	return responses
}

// List は全求人を返す。
// GET /jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponses(jobs))
}

// Details は指定IDの求人詳細を返す。存在しない場合は404。
// GET /job-details/{id}
func (h *JobHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	j, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if j == nil {
		handleServiceError(w, model.NewJobNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j))
}

// GetForUpdate は編集フォーム用に指定IDの求人を返す。存在しない場合は404。
// GET /update-job/{id}
func (h *JobHandler) GetForUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	j, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if j == nil {
		handleServiceError(w, model.NewJobNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j))
}

// ListByOwner は認証済みオーナーの求人一覧を返す。
// パスパラメータはオーナーのメールアドレス。所有権チェックはミドルウェアで行う。
// GET /jobs/{key}
func (h *JobHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "key")

	jobs, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponses(jobs))
}

// Create は求人を作成する。
// ボディのemailは認証済みメールアドレスと一致しなければならない。
// POST /jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var input job.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleServiceError(w, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.Create(r.Context(), email, &input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Update は求人の全フィールドを更新する。
// パスパラメータは求人ID。オーナーチェックはサービス層で保存済みオーナーに対して行う。
// PUT /jobs/{key}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "key")

	var input job.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleServiceError(w, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.Update(r.Context(), id, email, &input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// applicantNumberRequest は応募者数更新リクエストのボディ。
type applicantNumberRequest struct {
	ApplicantNumber int `json:"applicant_number"`
}

// UpdateApplicantNumber は応募者数を更新する。
// 応募者が自分以外のオーナーの求人に応募した際に呼ばれるため、
// 認証のみ必要で所有権チェックは行わない。
// PATCH /applicant-number/{id}
func (h *JobHandler) UpdateApplicantNumber(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req applicantNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.UpdateApplicantNumber(r.Context(), id, req.ApplicantNumber)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Delete は求人を削除する。対象が存在しない場合もDeletedCount=0で200を返す。
// DELETE /jobs/{key}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "key")

	result, err := h.service.Delete(r.Context(), id, email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
