package stats

import "gorm.io/gorm"

// RankEntry is one row of a per-metric top-50 list.
type RankEntry struct {
	ItemID uint    `json:"item_id"`
	Code   string  `json:"code"`
	Value  float64 `json:"value"`
}

// Rankings holds the six per-metric top-50 lists. The total metric uses the
// integer total (a+b+c+d+n), consistent with the individual fields.
type Rankings struct {
	Total []RankEntry `json:"total"`
	A     []RankEntry `json:"a"`
	B     []RankEntry `json:"b"`
	C     []RankEntry `json:"c"`
	D     []RankEntry `json:"d"`
	N     []RankEntry `json:"n"`
}

// ValidMode reports whether a rankings mode is one of mine or global.
func ValidMode(mode string) bool {
	return mode == "mine" || mode == "global"
}

// TopRankings produces the six top-50 lists. Mode mine restricts to the
// caller's own ratings and ranks by max value; mode global uses all ratings
// and ranks by mean. Ties break on item id ascending.
func TopRankings(db *gorm.DB, userID uint, mode string) (*Rankings, error) {
	rankFor := func(expr string) ([]RankEntry, error) {
		query := db.Table("ratings").
			Joins("JOIN items ON items.id = ratings.item_id")

		aggregate := "AVG"
		if mode == "mine" {
			query = query.Where("ratings.user_id = ?", userID)
			aggregate = "MAX"
		}

		entries := []RankEntry{}
		err := query.
			Select("items.id AS item_id, items.code AS code, " + aggregate + "(" + expr + ") AS value").
			Group("items.id, items.code").
			Order("value DESC").
			Order("items.id ASC").
			Limit(50).
			Scan(&entries).Error
		if err != nil {
			return nil, err
		}
		return entries, nil
	}

	result := &Rankings{}
	metrics := []struct {
		expr string
		dest *[]RankEntry
	}{
		{"ratings.a + ratings.b + ratings.c + ratings.d + ratings.n", &result.Total},
		{"ratings.a", &result.A},
		{"ratings.b", &result.B},
		{"ratings.c", &result.C},
		{"ratings.d", &result.D},
		{"ratings.n", &result.N},
	}
	for _, metric := range metrics {
		entries, err := rankFor(metric.expr)
		if err != nil {
			return nil, err
		}
		*metric.dest = entries
	}
	return result, nil
}
