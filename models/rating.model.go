package models

import "time"

// Rating rows are append-only: they are never updated, and only removed when
// their item is deleted. The unique index keeps a participant from holding two
// ratings on the same item at the same instant.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index;uniqueIndex:uq_rating_item_user_time" json:"item_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uq_rating_item_user_time" json:"user_id"`
	A         int       `gorm:"not null;check:a >= 0 AND a <= 10" json:"a"`
	B         int       `gorm:"not null;check:b >= 0 AND b <= 10" json:"b"`
	C         int       `gorm:"not null;check:c >= 0 AND c <= 10" json:"c"`
	D         int       `gorm:"not null;check:d >= 0 AND d <= 10" json:"d"`
	N         int       `gorm:"not null;check:n >= 0 AND n <= 2" json:"n"`
	CreatedAt time.Time `gorm:"not null;uniqueIndex:uq_rating_item_user_time" json:"created_at"`

	Item Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Total is the fractional score used for item and ranking averages.
func (r *Rating) Total() float64 {
	return float64(r.A+r.B+r.C+r.D)/4.0 + float64(r.N)
}

// TotalSum is the integer score used in disclosure summaries and per-metric rankings.
func (r *Rating) TotalSum() int {
	return r.A + r.B + r.C + r.D + r.N
}
