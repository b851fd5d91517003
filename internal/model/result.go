package model

// InsertResult はドキュメント挿入操作の結果を表す。
type InsertResult struct {
	InsertedID string `json:"inserted_id"`
}

// UpdateResult はドキュメント更新操作の結果を表す。
type UpdateResult struct {
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}

// DeleteResult はドキュメント削除操作の結果を表す。
// 対象が存在しない場合はDeletedCount=0で正常に返る（冪等）。
type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
