package models

import "time"

type Invite struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Code         string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	ExpiresAt    *time.Time `json:"expires_at"`
	UsedByUserID *uint      `json:"used_by_user_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Invite) TableName() string {
	return "invites"
}
