package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, job, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeJobNotFound    = "JOB_NOT_FOUND"
	ErrCodeInvalidJobID   = "INVALID_JOB_ID"
	ErrCodeEmailRequired  = "EMAIL_REQUIRED"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は認証済みだが権限のないアクセスのエラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このリソースへのアクセス権限がありません。",
		Category: "auth",
		Action:   "自分が所有するリソースのみアクセスできます。",
	}
}

// NewJobNotFoundError は求人未検出エラーを生成する。
func NewJobNotFoundError(jobID string) *APIError {
	return &APIError{
		Code:     ErrCodeJobNotFound,
		Message:  fmt.Sprintf("指定された求人が見つかりません: %s", jobID),
		Category: "job",
		Action:   "求人IDを確認してください。",
	}
}

// NewInvalidJobIDError は不正な求人IDエラーを生成する。
func NewInvalidJobIDError(jobID string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidJobID,
		Message:  fmt.Sprintf("不正な求人ID形式です: %s", jobID),
		Category: "validation",
		Action:   "求人IDはUUID形式で指定してください。",
	}
}

// NewEmailRequiredError はメールアドレス未指定エラーを生成する。
func NewEmailRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailRequired,
		Message:  "メールアドレスが指定されていません。",
		Category: "validation",
		Action:   "emailフィールドを指定してください。",
	}
}

// NewInvalidRequestError はリクエスト解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}
