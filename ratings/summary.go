package ratings

import (
	"time"

	"rateapp/models"

	"gorm.io/gorm"
)

// profileAlias maps a rating owner's handle to the non-identifying label shown
// in disclosure summaries.
func profileAlias(username string) string {
	switch username {
	case "p1":
		return "1"
	case "p2":
		return "2"
	case "p3":
		return "3"
	case "p4":
		return "4"
	}
	return "u"
}

// FieldStats carries one value per rating field plus the integer total.
type FieldStats struct {
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	D     float64 `json:"d"`
	N     float64 `json:"n"`
	Total float64 `json:"total"`
}

// OtherRating is one of the most recent ratings by other participants,
// labelled with a profile alias instead of the owner's handle.
type OtherRating struct {
	Profile   string    `json:"profile"`
	A         int       `json:"a"`
	B         int       `json:"b"`
	C         int       `json:"c"`
	D         int       `json:"d"`
	N         int       `json:"n"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// OthersSummary aggregates other participants' ratings. The avg and best
// blocks are null when nobody else has rated, keeping "no data" distinct from
// all-zero scores.
type OthersSummary struct {
	ItemID      uint          `json:"item_id"`
	OthersCount int64         `json:"others_count"`
	OthersAvg   *FieldStats   `json:"others_avg"`
	OthersBest  *FieldStats   `json:"others_best"`
	OthersLast  []OtherRating `json:"others_last"`
}

// ViewOthers builds the disclosure summary for an item. The caller must have
// rated the item themselves at least once, otherwise ErrRateFirst is returned.
// Zero ratings by others is a valid, empty summary.
func ViewOthers(db *gorm.DB, itemID, userID uint) (*OthersSummary, error) {
	ok, err := CanViewOthers(db, itemID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRateFirst
	}

	summary := &OthersSummary{
		ItemID:     itemID,
		OthersLast: []OtherRating{},
	}

	var count int64
	if err := db.Model(&models.Rating{}).
		Where("item_id = ? AND user_id <> ?", itemID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return summary, nil
	}
	summary.OthersCount = count

	var agg struct {
		AvgA      float64
		AvgB      float64
		AvgC      float64
		AvgD      float64
		AvgN      float64
		AvgTotal  float64
		BestA     float64
		BestB     float64
		BestC     float64
		BestD     float64
		BestN     float64
		BestTotal float64
	}
	err = db.Model(&models.Rating{}).
		Select(`COALESCE(AVG(a), 0) AS avg_a,
			COALESCE(AVG(b), 0) AS avg_b,
			COALESCE(AVG(c), 0) AS avg_c,
			COALESCE(AVG(d), 0) AS avg_d,
			COALESCE(AVG(n), 0) AS avg_n,
			COALESCE(AVG(a + b + c + d + n), 0) AS avg_total,
			COALESCE(MAX(a), 0) AS best_a,
			COALESCE(MAX(b), 0) AS best_b,
			COALESCE(MAX(c), 0) AS best_c,
			COALESCE(MAX(d), 0) AS best_d,
			COALESCE(MAX(n), 0) AS best_n,
			COALESCE(MAX(a + b + c + d + n), 0) AS best_total`).
		Where("item_id = ? AND user_id <> ?", itemID, userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	summary.OthersAvg = &FieldStats{A: agg.AvgA, B: agg.AvgB, C: agg.AvgC, D: agg.AvgD, N: agg.AvgN, Total: agg.AvgTotal}
	summary.OthersBest = &FieldStats{A: agg.BestA, B: agg.BestB, C: agg.BestC, D: agg.BestD, N: agg.BestN, Total: agg.BestTotal}

	var recent []struct {
		A         int
		B         int
		C         int
		D         int
		N         int
		CreatedAt time.Time
		Username  string
	}
	err = db.Model(&models.Rating{}).
		Select("ratings.a, ratings.b, ratings.c, ratings.d, ratings.n, ratings.created_at, users.username AS username").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.item_id = ? AND ratings.user_id <> ?", itemID, userID).
		Order("ratings.created_at DESC").
		Limit(10).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}

	for _, r := range recent {
		summary.OthersLast = append(summary.OthersLast, OtherRating{
			Profile:   profileAlias(r.Username),
			A:         r.A,
			B:         r.B,
			C:         r.C,
			D:         r.D,
			N:         r.N,
			Total:     r.A + r.B + r.C + r.D + r.N,
			CreatedAt: r.CreatedAt,
		})
	}

	return summary, nil
}
