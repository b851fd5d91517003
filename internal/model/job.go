// Package model はドメインモデルを定義する。
package model

import "time"

// Job は求人情報を表す。
// Emailは求人オーナーのメールアドレスであり、所有権チェックのキーとして使用する。
// PostingDateとDeadlineはクライアント定義の文字列をそのまま保持する。
type Job struct {
	ID              string
	Title           string
	Name            string
	Email           string
	Category        string
	SalaryRange     string
	BannerURL       string
	ApplicantNumber int
	PostingDate     string
	Deadline        string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
