package ratings

import (
	"errors"
	"sync"
	"testing"
	"time"

	"rateapp/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Invite{}, &models.Item{}, &models.Rating{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}

func seedItem(t *testing.T, db *gorm.DB, code string) models.Item {
	t.Helper()
	item := models.Item{Code: code, Name: code}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("creating item %s: %v", code, err)
	}
	return item
}

func freezeTime(t *testing.T, at time.Time) func(time.Time) {
	t.Helper()
	current := at
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(next time.Time) { current = next }
}

func TestSubmitRejectsOutOfRangeScores(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "p1")
	item := seedItem(t, db, "it1")

	cases := []struct {
		name          string
		a, b, c, d, n int
	}{
		{"a too high", 11, 0, 0, 0, 0},
		{"b negative", 0, -1, 0, 0, 0},
		{"c too high", 0, 0, 11, 0, 0},
		{"d negative", 0, 0, 0, -3, 0},
		{"n too high", 5, 5, 5, 5, 3},
		{"n negative", 5, 5, 5, 5, -1},
	}
	for _, tc := range cases {
		if _, err := Submit(db, item.ID, user.ID, tc.a, tc.b, tc.c, tc.d, tc.n); !errors.Is(err, ErrScoreOutOfRange) {
			t.Fatalf("%s: expected ErrScoreOutOfRange, got %v", tc.name, err)
		}
	}

	var count int64
	db.Model(&models.Rating{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submissions stored %d ratings, want 0", count)
	}
}

func TestSubmitCooldown(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "p1")
	item := seedItem(t, db, "it1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	advance := freezeTime(t, base)

	if _, err := Submit(db, item.ID, user.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Immediate resubmission is inside the window
	if _, err := Submit(db, item.ID, user.ID, 6, 6, 6, 6, 1); !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected ErrCooldown, got %v", err)
	}

	// One second short of the window still fails
	advance(base.Add(CooldownWindow - time.Second))
	if _, err := Submit(db, item.ID, user.ID, 6, 6, 6, 6, 1); !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected ErrCooldown just inside window, got %v", err)
	}

	// Exactly the window elapsed is permitted
	advance(base.Add(CooldownWindow))
	if _, err := Submit(db, item.ID, user.ID, 6, 6, 6, 6, 1); err != nil {
		t.Fatalf("submission at exactly the cooldown boundary failed: %v", err)
	}

	var count int64
	db.Model(&models.Rating{}).Where("item_id = ? AND user_id = ?", item.ID, user.ID).Count(&count)
	if count != 2 {
		t.Fatalf("stored %d ratings, want 2", count)
	}
}

func TestSubmitSerializesConcurrentAttempts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "p1")
	item := seedItem(t, db, "it1")

	freezeTime(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	// With the clock frozen, only the first submission to reach the store can
	// win; every other one must see it and hit the cooldown.
	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		cooldowns int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Submit(db, item.ID, user.ID, 5, 5, 5, 5, 0)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrCooldown):
				cooldowns++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("%d concurrent submissions succeeded, want 1", successes)
	}
	if cooldowns != attempts-1 {
		t.Fatalf("%d submissions hit the cooldown, want %d", cooldowns, attempts-1)
	}

	var count int64
	db.Model(&models.Rating{}).Where("item_id = ? AND user_id = ?", item.ID, user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("stored %d ratings, want 1", count)
	}
}

func TestSubmitAppendsAndLastRatingTracksLatest(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "p1")
	item := seedItem(t, db, "it1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	advance := freezeTime(t, base)

	if _, err := Submit(db, item.ID, user.ID, 1, 2, 3, 4, 0); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	advance(base.Add(10 * time.Minute))
	second, err := Submit(db, item.ID, user.ID, 9, 8, 7, 6, 2)
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	last, err := LastRating(db, item.ID, user.ID)
	if err != nil {
		t.Fatalf("LastRating failed: %v", err)
	}
	if last == nil || last.ID != second.ID {
		t.Fatalf("LastRating did not return the newest row")
	}
	if last.A != 9 || last.B != 8 || last.C != 7 || last.D != 6 || last.N != 2 {
		t.Fatalf("unexpected last rating fields: %+v", last)
	}
}

func TestSubmitIndependentCooldownPerItem(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "p1")
	first := seedItem(t, db, "it1")
	second := seedItem(t, db, "it2")

	freezeTime(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	if _, err := Submit(db, first.ID, user.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("submission on first item failed: %v", err)
	}
	// A different item is not affected by the first item's cooldown
	if _, err := Submit(db, second.ID, user.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("submission on second item failed: %v", err)
	}
}

func TestDisclosureRequiresOwnRating(t *testing.T) {
	db := newTestDB(t)
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	item := seedItem(t, db, "it1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, base)

	// P2 has rated, but that does not unlock anything for P1
	if _, err := Submit(db, item.ID, p2.ID, 7, 7, 7, 7, 1); err != nil {
		t.Fatalf("P2 submission failed: %v", err)
	}

	ok, err := CanViewOthers(db, item.ID, p1.ID)
	if err != nil {
		t.Fatalf("CanViewOthers failed: %v", err)
	}
	if ok {
		t.Fatalf("P1 can view others without any own rating")
	}
	if _, err := ViewOthers(db, item.ID, p1.ID); !errors.Is(err, ErrRateFirst) {
		t.Fatalf("expected ErrRateFirst, got %v", err)
	}

	// One own rating unlocks disclosure, regardless of cooldown state
	if _, err := Submit(db, item.ID, p1.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("P1 submission failed: %v", err)
	}
	if _, err := Submit(db, item.ID, p1.ID, 6, 6, 6, 6, 0); !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected ErrCooldown on immediate resubmission, got %v", err)
	}

	ok, err = CanViewOthers(db, item.ID, p1.ID)
	if err != nil {
		t.Fatalf("CanViewOthers failed: %v", err)
	}
	if !ok {
		t.Fatalf("P1 cannot view others after rating")
	}
	if _, err := ViewOthers(db, item.ID, p1.ID); err != nil {
		t.Fatalf("ViewOthers failed after own rating: %v", err)
	}
}

func TestViewOthersEmpty(t *testing.T) {
	db := newTestDB(t)
	p1 := seedUser(t, db, "p1")
	item := seedItem(t, db, "it1")

	freezeTime(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	if _, err := Submit(db, item.ID, p1.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("P1 submission failed: %v", err)
	}

	summary, err := ViewOthers(db, item.ID, p1.ID)
	if err != nil {
		t.Fatalf("ViewOthers failed: %v", err)
	}
	if summary.OthersCount != 0 {
		t.Fatalf("others count = %d, want 0", summary.OthersCount)
	}
	if len(summary.OthersLast) != 0 {
		t.Fatalf("others last has %d entries, want 0", len(summary.OthersLast))
	}
	// No other ratings means no aggregates at all, not zero-valued ones
	if summary.OthersAvg != nil || summary.OthersBest != nil {
		t.Fatalf("empty summary carries aggregates: %+v", summary)
	}
}

func TestViewOthersAggregatesAndAliases(t *testing.T) {
	db := newTestDB(t)
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	p3 := seedUser(t, db, "p3")
	item := seedItem(t, db, "it1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	advance := freezeTime(t, base)

	if _, err := Submit(db, item.ID, p1.ID, 1, 1, 1, 1, 0); err != nil {
		t.Fatalf("P1 submission failed: %v", err)
	}
	if _, err := Submit(db, item.ID, p2.ID, 5, 5, 5, 5, 0); err != nil {
		t.Fatalf("P2 submission failed: %v", err)
	}
	advance(base.Add(time.Minute))
	if _, err := Submit(db, item.ID, p3.ID, 10, 10, 10, 10, 2); err != nil {
		t.Fatalf("P3 submission failed: %v", err)
	}

	summary, err := ViewOthers(db, item.ID, p1.ID)
	if err != nil {
		t.Fatalf("ViewOthers failed: %v", err)
	}

	if summary.OthersCount != 2 {
		t.Fatalf("others count = %d, want 2", summary.OthersCount)
	}

	if summary.OthersAvg == nil || summary.OthersBest == nil {
		t.Fatalf("aggregates missing despite %d other ratings", summary.OthersCount)
	}

	// P2 total_sum 20, P3 total_sum 42
	if summary.OthersAvg.Total != 31 {
		t.Fatalf("others avg total = %v, want 31", summary.OthersAvg.Total)
	}
	if summary.OthersAvg.A != 7.5 {
		t.Fatalf("others avg a = %v, want 7.5", summary.OthersAvg.A)
	}
	if summary.OthersBest.Total != 42 {
		t.Fatalf("others best total = %v, want 42", summary.OthersBest.Total)
	}
	if summary.OthersBest.N != 2 {
		t.Fatalf("others best n = %v, want 2", summary.OthersBest.N)
	}

	if len(summary.OthersLast) != 2 {
		t.Fatalf("others last has %d entries, want 2", len(summary.OthersLast))
	}
	// Most recent first, aliases instead of handles
	if summary.OthersLast[0].Profile != "3" || summary.OthersLast[0].Total != 42 {
		t.Fatalf("unexpected first entry: %+v", summary.OthersLast[0])
	}
	if summary.OthersLast[1].Profile != "2" || summary.OthersLast[1].Total != 20 {
		t.Fatalf("unexpected second entry: %+v", summary.OthersLast[1])
	}
}

func TestDetailWithholdsSlotsUntilOwnRating(t *testing.T) {
	db := newTestDB(t)
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	item := seedItem(t, db, "it1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, base)

	if _, err := Submit(db, item.ID, p2.ID, 8, 7, 6, 5, 1); err != nil {
		t.Fatalf("P2 submission failed: %v", err)
	}

	detail, err := Detail(db, item, p1.ID)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if detail.CanViewOthers {
		t.Fatalf("disclosure unlocked without own rating")
	}
	if detail.MyRating != nil {
		t.Fatalf("own rating present without any submission")
	}
	if len(detail.RatingsByProfile) != 4 {
		t.Fatalf("profile slots = %d, want 4", len(detail.RatingsByProfile))
	}
	for _, slot := range detail.RatingsByProfile {
		if slot.Rating != nil {
			t.Fatalf("slot %s rating disclosed while locked", slot.Profile)
		}
	}

	// After rating, P2's slot is revealed and the own rating round-trips
	submitted, err := Submit(db, item.ID, p1.ID, 3, 4, 5, 6, 2)
	if err != nil {
		t.Fatalf("P1 submission failed: %v", err)
	}

	detail, err = Detail(db, item, p1.ID)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if !detail.CanViewOthers {
		t.Fatalf("disclosure still locked after own rating")
	}
	if detail.MyRating == nil {
		t.Fatalf("own rating missing")
	}
	if detail.MyRating.A != 3 || detail.MyRating.B != 4 || detail.MyRating.C != 5 || detail.MyRating.D != 6 || detail.MyRating.N != 2 {
		t.Fatalf("own rating fields do not round-trip: %+v", detail.MyRating)
	}
	if detail.MyRating.Total != submitted.TotalSum() {
		t.Fatalf("own rating total = %d, want %d", detail.MyRating.Total, submitted.TotalSum())
	}

	var p2Slot *SlotRating
	for i := range detail.RatingsByProfile {
		if detail.RatingsByProfile[i].Profile == "2" {
			p2Slot = &detail.RatingsByProfile[i]
		}
	}
	if p2Slot == nil || p2Slot.Rating == nil {
		t.Fatalf("P2 slot rating not revealed after own rating")
	}
	if p2Slot.Rating.Total != 27 {
		t.Fatalf("P2 slot total = %d, want 27", p2Slot.Rating.Total)
	}

	// Slots for participants without ratings stay empty rather than erroring
	for _, slot := range detail.RatingsByProfile {
		if slot.Profile != "1" && slot.Profile != "2" && slot.Rating != nil {
			t.Fatalf("slot %s unexpectedly has a rating", slot.Profile)
		}
	}
}

func TestDerivedTotals(t *testing.T) {
	rating := models.Rating{A: 5, B: 6, C: 7, D: 8, N: 1}
	if got := rating.Total(); got != 7.5 {
		t.Fatalf("Total() = %v, want 7.5", got)
	}
	if got := rating.TotalSum(); got != 27 {
		t.Fatalf("TotalSum() = %v, want 27", got)
	}

	rating = models.Rating{A: 10, B: 10, C: 10, D: 10, N: 2}
	if got := rating.Total(); got != 12 {
		t.Fatalf("Total() = %v, want 12", got)
	}
	if got := rating.TotalSum(); got != 42 {
		t.Fatalf("TotalSum() = %v, want 42", got)
	}
}
