package ratings

import (
	"errors"
	"time"

	"rateapp/models"

	"gorm.io/gorm"
)

// InlineRating is a rating rendered inside the item detail view.
type InlineRating struct {
	A         int       `json:"a"`
	B         int       `json:"b"`
	C         int       `json:"c"`
	D         int       `json:"d"`
	N         int       `json:"n"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotRating holds one participant slot's latest rating, or nil when withheld
// or missing.
type SlotRating struct {
	Profile string        `json:"profile"`
	Rating  *InlineRating `json:"rating"`
}

type ItemDetail struct {
	Item             models.Item   `json:"item"`
	MyRating         *InlineRating `json:"my_rating"`
	RatingsByProfile []SlotRating  `json:"ratings_by_profile"`
	CanViewOthers    bool          `json:"can_view_others"`
}

// profileSlots is the fixed enumerated set of participant slots shown in the
// item detail view.
var profileSlots = []struct {
	Slot     string
	Username string
}{
	{"1", "p1"},
	{"2", "p2"},
	{"3", "p3"},
	{"4", "p4"},
}

func inlineOf(r *models.Rating) *InlineRating {
	return &InlineRating{
		A:         r.A,
		B:         r.B,
		C:         r.C,
		D:         r.D,
		N:         r.N,
		Total:     r.TotalSum(),
		CreatedAt: r.CreatedAt,
	}
}

// Detail builds the item detail view. The caller's own latest rating is always
// included; every slot's rating is withheld until the caller has rated the
// item themselves.
func Detail(db *gorm.DB, item models.Item, userID uint) (*ItemDetail, error) {
	myRating, err := LastRating(db, item.ID, userID)
	if err != nil {
		return nil, err
	}
	canViewOthers := myRating != nil

	slots := make([]SlotRating, 0, len(profileSlots))
	for _, slot := range profileSlots {
		var inline *InlineRating
		if canViewOthers {
			var user models.User
			err := db.Where("username = ?", slot.Username).First(&user).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if err == nil {
				rating, err := LastRating(db, item.ID, user.ID)
				if err != nil {
					return nil, err
				}
				if rating != nil {
					inline = inlineOf(rating)
				}
			}
		}
		slots = append(slots, SlotRating{Profile: slot.Slot, Rating: inline})
	}

	detail := &ItemDetail{
		Item:             item,
		RatingsByProfile: slots,
		CanViewOthers:    canViewOthers,
	}
	if myRating != nil {
		detail.MyRating = inlineOf(myRating)
	}
	return detail, nil
}
