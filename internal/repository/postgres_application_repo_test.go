package repository

import (
	"testing"
)

// PostgresApplicationRepoはApplicationRepositoryインターフェースを満たすことを検証
func TestPostgresApplicationRepo_ImplementsInterface(t *testing.T) {
	var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
}

// NewPostgresApplicationRepoが正しく初期化されることを検証
func TestNewPostgresApplicationRepo_Initializes(t *testing.T) {
	repo := NewPostgresApplicationRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}
