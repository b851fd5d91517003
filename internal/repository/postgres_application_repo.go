package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/careerfy/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// Create は応募を作成する。
func (r *PostgresApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applied_jobs (id, email, payload, created_at)
		 VALUES ($1, $2, $3, $4)`,
		application.ID, application.Email, []byte(application.Payload), application.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}

	return nil
}

// ListByEmail は指定応募者の応募一覧を作成日時の降順で返す。
func (r *PostgresApplicationRepo) ListByEmail(ctx context.Context, email string) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, payload, created_at FROM applied_jobs WHERE email = $1 ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by email: %w", err)
	}
	defer rows.Close()

	applications := []*model.Application{}
	for rows.Next() {
		app := &model.Application{}
		var payload []byte
		if err := rows.Scan(&app.ID, &app.Email, &payload, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		app.Payload = payload
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return applications, nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
