package model

import (
	"encoding/json"
	"time"
)

// Application は求人への応募を表す。
// 応募フォームの内容はスキーマレスであり、Payloadに受信時のJSONをそのまま保持する。
// EmailはPayload内のemailフィールドから抽出した応募者メールアドレス（存在しない場合は空文字列）。
type Application struct {
	ID        string
	Email     string
	Payload   json.RawMessage
	CreatedAt time.Time
}
