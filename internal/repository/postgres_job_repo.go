package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/careerfy/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	db *sql.DB
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{db: db}
}

const jobColumns = `id, title, name, email, category, salary_range, banner_url, posting_date, deadline, description, applicant_number, created_at, updated_at`

// scanJob は1行分の求人をスキャンする。NULL許容カラムは空文字列に変換する。
func scanJob(scanner interface {
	Scan(dest ...any) error
}) (*model.Job, error) {
	job := &model.Job{}
	var salaryRange, bannerURL, postingDate, deadline, description sql.NullString

	err := scanner.Scan(
		&job.ID, &job.Title, &job.Name, &job.Email, &job.Category,
		&salaryRange, &bannerURL, &postingDate, &deadline, &description,
		&job.ApplicantNumber, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.SalaryRange = salaryRange.String
	job.BannerURL = bannerURL.String
	job.PostingDate = postingDate.String
	job.Deadline = deadline.String
	job.Description = description.String

	return job, nil
}

// nullString は空文字列をNULLとして保存するための変換を行う。
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// FindAll は全求人を作成日時の降順で返す。
func (r *PostgresJobRepo) FindAll(ctx context.Context) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *PostgresJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}

	return job, nil
}

// ListByEmail は指定オーナーの求人一覧を作成日時の降順で返す。
func (r *PostgresJobRepo) ListByEmail(ctx context.Context, email string) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE email = $1 ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by email: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// Create は求人を作成する。
func (r *PostgresJobRepo) Create(ctx context.Context, job *model.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, name, email, category, salary_range, banner_url, posting_date, deadline, description, applicant_number, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		job.ID, job.Title, job.Name, job.Email, job.Category,
		nullString(job.SalaryRange), nullString(job.BannerURL),
		nullString(job.PostingDate), nullString(job.Deadline), nullString(job.Description),
		job.ApplicantNumber, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Update は求人の全フィールドを更新し、影響行数を返す。
func (r *PostgresJobRepo) Update(ctx context.Context, job *model.Job) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs
		 SET title = $2, name = $3, email = $4, category = $5,
		     salary_range = $6, banner_url = $7, posting_date = $8, deadline = $9,
		     description = $10, applicant_number = $11, updated_at = $12
		 WHERE id = $1`,
		job.ID, job.Title, job.Name, job.Email, job.Category,
		nullString(job.SalaryRange), nullString(job.BannerURL),
		nullString(job.PostingDate), nullString(job.Deadline), nullString(job.Description),
		job.ApplicantNumber, job.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// UpdateApplicantNumber は応募者数を更新し、影響行数を返す。
func (r *PostgresJobRepo) UpdateApplicantNumber(ctx context.Context, id string, applicantNumber int) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET applicant_number = $2, updated_at = NOW() WHERE id = $1`,
		id, applicantNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update applicant number: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteByID は指定IDの求人を削除し、削除行数を返す。
// 対象が存在しない場合は0を返す（エラーにしない）。
func (r *PostgresJobRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func collectJobs(rows *sql.Rows) ([]*model.Job, error) {
	jobs := []*model.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}

// compile-time interface check
var _ JobRepository = (*PostgresJobRepo)(nil)
