package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hitoshi/careerfy/internal/model"
)

// maxApplicationBodySize は応募ボディの最大サイズ（1MB）。
const maxApplicationBodySize = 1 << 20

// ApplicationServiceInterface は応募ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	Create(ctx context.Context, payload json.RawMessage) (*model.InsertResult, error)
	ListByOwner(ctx context.Context, email string) ([]*model.Application, error)
}

// ApplicationHandler は求人応募のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Create は応募を作成する。ボディは任意形状のJSONオブジェクト。
// POST /applied-jobs
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxApplicationBodySize))
	if err != nil {
		handleServiceError(w, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.Create(r.Context(), json.RawMessage(body))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListByOwner は認証済み応募者の応募一覧を返す。
// クエリパラメータemailの所有権チェックはミドルウェアで行う。
// 各応募は受信時のpayloadにidとcreated_atを付加した形で返す。
// GET /applied-jobs?email=
func (h *ApplicationHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	apps, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]map[string]any, 0, len(apps))
	for _, app := range apps {
		fields := map[string]any{}
		// 保存済みpayloadは作成時にJSONオブジェクトであることを検証済み
		if err := json.Unmarshal(app.Payload, &fields); err != nil {
			handleServiceError(w, err)
			return
		}
		fields["id"] = app.ID
		fields["created_at"] = app.CreatedAt
		responses = append(responses, fields)
	}

	writeJSON(w, http.StatusOK, responses)
}
