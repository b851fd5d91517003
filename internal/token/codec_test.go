package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// テスト用に固定時刻を注入したCodecを生成するヘルパー。
func newTestCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c := NewCodec("test-secret-key", time.Hour)
	c.timeNow = func() time.Time { return now }
	return c
}

// 発行したトークンが有効期限内に検証でき、識別情報が一致することを検証
func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, issuedAt)

	tokenString, err := c.Issue("a@x.com")
	if err != nil {
		t.Fatalf("トークン発行に失敗: %v", err)
	}
	if tokenString == "" {
		t.Fatal("空のトークンが返された")
	}

	// 有効期限直前まで検証可能であること
	checkTimes := []time.Duration{0, time.Minute, 59 * time.Minute}
	for _, offset := range checkTimes {
		c.timeNow = func() time.Time { return issuedAt.Add(offset) }
		claims, err := c.Verify(tokenString)
		if err != nil {
			t.Fatalf("検証に失敗 (offset=%v): %v", offset, err)
		}
		if claims.Email != "a@x.com" {
			t.Errorf("email = %q, want %q", claims.Email, "a@x.com")
		}
	}
}

// 有効期限を過ぎたトークンの検証がErrExpiredで失敗することを検証
func TestCodec_Verify_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, issuedAt)

	tokenString, err := c.Issue("a@x.com")
	if err != nil {
		t.Fatalf("トークン発行に失敗: %v", err)
	}

	// 1時間+1秒後
	c.timeNow = func() time.Time { return issuedAt.Add(time.Hour + time.Second) }

	_, err = c.Verify(tokenString)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

// 改ざんされたトークンの検証がErrInvalidTokenで失敗することを検証
func TestCodec_Verify_Tampered(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, now)

	tokenString, err := c.Issue("a@x.com")
	if err != nil {
		t.Fatalf("トークン発行に失敗: %v", err)
	}

	// ペイロード部の1バイトを書き換える
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Fatalf("JWT形式ではないトークン: %q", tokenString)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = c.Verify(tampered)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

// 異なる秘密鍵で署名されたトークンが拒否されることを検証
func TestCodec_Verify_WrongSecret(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	other := NewCodec("another-secret", time.Hour)
	other.timeNow = func() time.Time { return now }

	tokenString, err := other.Issue("a@x.com")
	if err != nil {
		t.Fatalf("トークン発行に失敗: %v", err)
	}

	c := newTestCodec(t, now)
	_, err = c.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

// 形式不正な文字列の検証がErrInvalidTokenで失敗することを検証
func TestCodec_Verify_Malformed(t *testing.T) {
	c := newTestCodec(t, time.Now())

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", input, err)
		}
	}
}
