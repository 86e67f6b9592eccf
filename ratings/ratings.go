package ratings

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"rateapp/models"

	"gorm.io/gorm"
)

// CooldownWindow is the minimum elapsed time between two ratings by the same
// participant on the same item. Exactly CooldownWindow elapsed is permitted.
const CooldownWindow = 5 * time.Minute

var (
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrCooldown        = errors.New("cooldown active")
	ErrRateFirst       = errors.New("rate first to view others")
)

// now is a hook for tests
var now = time.Now

// submitLocks serializes the cooldown check and insert per (item, participant)
// pair so two near-simultaneous submissions cannot both pass the check. The
// unique index on (item_id, user_id, created_at) backs this up at the store.
// Entries are never evicted: the key space is items times the fixed participant
// set, so the map stays small for the lifetime of the process.
var submitLocks sync.Map

// LastRating returns the participant's most recent rating for the item, or nil
// when they have none.
func LastRating(db *gorm.DB, itemID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("item_id = ? AND user_id = ?", itemID, userID).
		Order("created_at DESC").
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// CanViewOthers reports whether the participant has at least one rating of
// their own for the item, which is what unlocks other participants' ratings.
func CanViewOthers(db *gorm.DB, itemID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Rating{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func validScore(v, max int) bool {
	return v >= 0 && v <= max
}

// Submit appends a new rating after validating bounds and the cooldown rule.
// Ratings are never amended; a re-rate is a new row and the row with the
// latest created_at is the participant's current rating for the item.
func Submit(db *gorm.DB, itemID, userID uint, a, b, c, d, n int) (*models.Rating, error) {
	if !validScore(a, 10) || !validScore(b, 10) || !validScore(c, 10) || !validScore(d, 10) || !validScore(n, 2) {
		return nil, ErrScoreOutOfRange
	}

	muIface, _ := submitLocks.LoadOrStore(fmt.Sprintf("%d:%d", itemID, userID), &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	last, err := LastRating(db, itemID, userID)
	if err != nil {
		return nil, err
	}
	if last != nil && now().Sub(last.CreatedAt) < CooldownWindow {
		return nil, ErrCooldown
	}

	rating := &models.Rating{
		ItemID:    itemID,
		UserID:    userID,
		A:         a,
		B:         b,
		C:         c,
		D:         d,
		N:         n,
		CreatedAt: now(),
	}
	if err := db.Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}
