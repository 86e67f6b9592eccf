package stats

import (
	"time"

	"rateapp/models"

	"gorm.io/gorm"
)

// now is a hook for tests
var now = time.Now

// ValidRange reports whether a range selector is one of 7, 30 or all.
func ValidRange(name string) bool {
	return name == "7" || name == "30" || name == "all"
}

// rangeStart resolves a range selector to its window start. The second return
// is false for the unbounded range.
func rangeStart(name string) (time.Time, bool) {
	switch name {
	case "7":
		return now().AddDate(0, 0, -7), true
	case "30":
		return now().AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// RankingEntry is one row of the cross-item ranking.
type RankingEntry struct {
	ItemID   uint    `json:"item_id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	AvgTotal float64 `json:"avg_total"`
	Count    int64   `json:"count"`
}

// Ranking returns every item with at least one rating in range, ordered by
// mean fractional total descending. Ties break on item id ascending so the
// order is deterministic across stores.
func Ranking(db *gorm.DB, rangeName string) ([]RankingEntry, error) {
	query := db.Table("ratings").
		Select(`items.id AS item_id, items.code AS code, items.name AS name,
			AVG((ratings.a + ratings.b + ratings.c + ratings.d) / 4.0 + ratings.n) AS avg_total,
			COUNT(ratings.id) AS count`).
		Joins("JOIN items ON items.id = ratings.item_id")

	if start, ok := rangeStart(rangeName); ok {
		query = query.Where("ratings.created_at >= ?", start)
	}

	entries := []RankingEntry{}
	err := query.Group("items.id, items.code, items.name").
		Order("avg_total DESC").
		Order("items.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ItemStats is the per-item statistics view. Means are 0 when no ratings match
// the range.
type ItemStats struct {
	ItemID   uint            `json:"item_id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	AvgA     float64         `json:"avg_a"`
	AvgB     float64         `json:"avg_b"`
	AvgC     float64         `json:"avg_c"`
	AvgD     float64         `json:"avg_d"`
	AvgN     float64         `json:"avg_n"`
	AvgTotal float64         `json:"avg_total"`
	Ratings  []models.Rating `json:"ratings"`
}

// ItemStatsFor computes field means and the 10 most recent ratings for one
// item over the requested range.
func ItemStatsFor(db *gorm.DB, item models.Item, rangeName string) (*ItemStats, error) {
	start, bounded := rangeStart(rangeName)

	agg := db.Model(&models.Rating{}).Where("item_id = ?", item.ID)
	if bounded {
		agg = agg.Where("created_at >= ?", start)
	}

	result := &ItemStats{
		ItemID:  item.ID,
		Code:    item.Code,
		Name:    item.Name,
		Ratings: []models.Rating{},
	}

	var row struct {
		AvgA     float64
		AvgB     float64
		AvgC     float64
		AvgD     float64
		AvgN     float64
		AvgTotal float64
	}
	err := agg.Select(`COALESCE(AVG(a), 0) AS avg_a,
		COALESCE(AVG(b), 0) AS avg_b,
		COALESCE(AVG(c), 0) AS avg_c,
		COALESCE(AVG(d), 0) AS avg_d,
		COALESCE(AVG(n), 0) AS avg_n,
		COALESCE(AVG((a + b + c + d) / 4.0 + n), 0) AS avg_total`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	result.AvgA = row.AvgA
	result.AvgB = row.AvgB
	result.AvgC = row.AvgC
	result.AvgD = row.AvgD
	result.AvgN = row.AvgN
	result.AvgTotal = row.AvgTotal

	recent := db.Where("item_id = ?", item.ID)
	if bounded {
		recent = recent.Where("created_at >= ?", start)
	}
	err = recent.Order("created_at DESC").Limit(10).Find(&result.Ratings).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ItemSummary aggregates one item for the items summary view. The my_* fields
// are null when the caller has no matching ratings; the global fields are null
// for non-privileged callers.
type ItemSummary struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	MyBestTotal *float64 `json:"my_best_total"`
	MyBestA     *float64 `json:"my_best_a"`
	MyBestB     *float64 `json:"my_best_b"`
	MyBestC     *float64 `json:"my_best_c"`
	MyBestD     *float64 `json:"my_best_d"`
	MyBestN     *float64 `json:"my_best_n"`

	MyAvgTotal *float64 `json:"my_avg_total"`
	MyAvgA     *float64 `json:"my_avg_a"`
	MyAvgB     *float64 `json:"my_avg_b"`
	MyAvgC     *float64 `json:"my_avg_c"`
	MyAvgD     *float64 `json:"my_avg_d"`
	MyAvgN     *float64 `json:"my_avg_n"`

	GlobalBestTotal *float64 `json:"global_best_total"`
	GlobalAvgTotal  *float64 `json:"global_avg_total"`
}

// ItemsSummary computes, for every item, the caller's best and mean scores in
// range, plus the global best/mean of the integer total. The global fields are
// only disclosed when the caller is privileged; privilege is passed in
// explicitly rather than read from shared state.
func ItemsSummary(db *gorm.DB, rangeName string, userID uint, isAdmin bool) ([]ItemSummary, error) {
	const totalExpr = "ratings.a + ratings.b + ratings.c + ratings.d + ratings.n"

	sel := `items.id AS id, items.code AS code, items.name AS name,
		MAX(CASE WHEN ratings.user_id = ? THEN ` + totalExpr + ` END) AS my_best_total,
		MAX(CASE WHEN ratings.user_id = ? THEN ratings.a END) AS my_best_a,
		MAX(CASE WHEN ratings.user_id = ? THEN ratings.b END) AS my_best_b,
		MAX(CASE WHEN ratings.user_id = ? THEN ratings.c END) AS my_best_c,
		MAX(CASE WHEN ratings.user_id = ? THEN ratings.d END) AS my_best_d,
		MAX(CASE WHEN ratings.user_id = ? THEN ratings.n END) AS my_best_n,
		AVG(CASE WHEN ratings.user_id = ? THEN ` + totalExpr + ` END) AS my_avg_total,
		AVG(CASE WHEN ratings.user_id = ? THEN ratings.a END) AS my_avg_a,
		AVG(CASE WHEN ratings.user_id = ? THEN ratings.b END) AS my_avg_b,
		AVG(CASE WHEN ratings.user_id = ? THEN ratings.c END) AS my_avg_c,
		AVG(CASE WHEN ratings.user_id = ? THEN ratings.d END) AS my_avg_d,
		AVG(CASE WHEN ratings.user_id = ? THEN ratings.n END) AS my_avg_n,
		MAX(` + totalExpr + `) AS global_best_total,
		AVG(` + totalExpr + `) AS global_avg_total`

	args := make([]interface{}, 12)
	for i := range args {
		args[i] = userID
	}

	query := db.Table("items").Select(sel, args...)

	if start, ok := rangeStart(rangeName); ok {
		query = query.Joins("LEFT JOIN ratings ON ratings.item_id = items.id AND ratings.created_at >= ?", start)
	} else {
		query = query.Joins("LEFT JOIN ratings ON ratings.item_id = items.id")
	}

	summaries := []ItemSummary{}
	err := query.Group("items.id, items.code, items.name").
		Order("items.code ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		for i := range summaries {
			summaries[i].GlobalBestTotal = nil
			summaries[i].GlobalAvgTotal = nil
		}
	}
	return summaries, nil
}
