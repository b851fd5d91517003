// Package token はセッショントークンの発行と検証を提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/careerfy/internal/model"
)

var (
	// ErrInvalidToken は署名不一致または形式不正のトークンを示す。
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpired は有効期限切れのトークンを示す。
	ErrExpired = errors.New("token expired")
)

// Codec はHMAC-SHA256署名付きJWTの発行と検証を行う。
// 検証は(トークン, 秘密鍵, 現在時刻)のみに依存する純粋な計算であり、
// データストアには一切アクセスしない。
type Codec struct {
	secret  []byte
	ttl     time.Duration
	timeNow func() time.Time
}

// NewCodec はCodecを生成する。
// secretは署名用秘密鍵、ttlは発行時点からの有効期間を指定する。
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret:  []byte(secret),
		ttl:     ttl,
		timeNow: time.Now,
	}
}

// Issue は指定メールアドレスの識別情報を持つ署名付きトークンを発行する。
// 有効期限は発行時刻からttl後に設定される。
func (c *Codec) Issue(email string) (string, error) {
	now := c.timeNow()
	claims := &model.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗しました: %w", err)
	}

	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、識別情報を返す。
// 有効期限切れの場合はErrExpired、署名不一致・形式不正の場合はErrInvalidTokenを返す。
func (c *Codec) Verify(tokenString string) (*model.Claims, error) {
	claims := &model.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.timeNow),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}

	return claims, nil
}
