package model

import "github.com/golang-jwt/jwt/v5"

// Claims はセッショントークンに埋め込む識別情報。
// Emailがシステム全体のオーナーキーとなる。
// 有効期限・発行時刻はRegisteredClaimsが保持する。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
