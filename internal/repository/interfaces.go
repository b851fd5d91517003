// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/careerfy/internal/model"
)

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	// FindAll は全求人を作成日時の降順で返す。
	FindAll(ctx context.Context) ([]*model.Job, error)

	// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// ListByEmail は指定オーナーの求人一覧を作成日時の降順で返す。
	ListByEmail(ctx context.Context, email string) ([]*model.Job, error)

	// Create は求人を作成する。
	Create(ctx context.Context, job *model.Job) error

	// Update は求人の全フィールドを更新し、影響行数を返す。
	Update(ctx context.Context, job *model.Job) (int64, error)

	// UpdateApplicantNumber は応募者数を更新し、影響行数を返す。
	UpdateApplicantNumber(ctx context.Context, id string, applicantNumber int) (int64, error)

	// DeleteByID は指定IDの求人を削除し、削除行数を返す。
	// 対象が存在しない場合は0を返す（エラーにしない）。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// ApplicationRepository は応募データの永続化インターフェース。
type ApplicationRepository interface {
	// Create は応募を作成する。
	Create(ctx context.Context, application *model.Application) error

	// ListByEmail は指定応募者の応募一覧を作成日時の降順で返す。
	ListByEmail(ctx context.Context, email string) ([]*model.Application, error)
}
