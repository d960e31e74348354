package dialogue

import (
	"context"
	"testing"
	"time"

	"tablemate/models"
	"tablemate/services/catalog"
	"tablemate/services/interpreter"
	"tablemate/services/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memProfiles struct {
	m map[string]*models.Profile
}

func (r *memProfiles) Get(accountID string) (*models.Profile, error) {
	if p, ok := r.m[accountID]; ok {
		return p, nil
	}
	return &models.Profile{AccountID: accountID}, nil
}

func (r *memProfiles) Save(p *models.Profile) error {
	r.m[p.AccountID] = p
	return nil
}

type memBookings struct {
	list []models.Booking
}

func (r *memBookings) Save(b models.Booking) error {
	r.list = append(r.list, b)
	return nil
}

func (r *memBookings) ListByAccount(accountID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.list {
		if b.AccountID == accountID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memReminders struct {
	scheduled []models.Booking
}

func (r *memReminders) ScheduleBookingReminder(b models.Booking) error {
	r.scheduled = append(r.scheduled, b)
	return nil
}

func newTestController() (*Controller, *memBookings, *memReminders) {
	cat := catalog.New(catalog.Seed())
	interp := interpreter.NewKeywordInterpreter()
	bookings := &memBookings{}
	reminders := &memReminders{}
	ctrl := NewController(
		NewPipeline(interp, cat, zap.NewNop()),
		NewPolicy(cat),
		recommend.NewEngine(cat),
		cat,
		&memProfiles{m: map[string]*models.Profile{}},
		bookings,
		reminders,
		zap.NewNop(),
	)
	return ctrl, bookings, reminders
}

func turn(t *testing.T, ctrl *Controller, sess *models.Session, prof *models.Profile, text string) *models.ChatResponse {
	t.Helper()
	resp := ctrl.HandleTurn(context.Background(), sess, prof, text)
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.Reply)
	return resp
}

func TestConciergeBookingEndToEnd(t *testing.T) {
	ctrl, bookings, reminders := newTestController()
	sess := models.NewSession("acc-1", "")
	prof := &models.Profile{AccountID: "acc-1"}

	resp := turn(t, ctrl, sess, prof, "hi")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Equal(t, models.SlotArea, sess.PendingSlot)

	resp = turn(t, ctrl, sess, prof, "romantic italian dinner in Mar Mikhael for 2, mid budget")
	require.Equal(t, models.StateRecommend, resp.State)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Tavolina", resp.Recommendations[0].Restaurant.Name)

	resp = turn(t, ctrl, sess, prof, "book 1")
	assert.Equal(t, models.StateBookingCollect, resp.State)
	assert.Contains(t, resp.Reply, "Tavolina")

	resp = turn(t, ctrl, sess, prof, "tomorrow")
	assert.Contains(t, resp.Reply, "time")

	resp = turn(t, ctrl, sess, prof, "8pm")
	assert.Contains(t, resp.Reply, "How many")

	resp = turn(t, ctrl, sess, prof, "2")
	assert.Contains(t, resp.Reply, "pass along")

	resp = turn(t, ctrl, sess, prof, "window seat please")
	assert.Equal(t, models.StateBookingConfirm, resp.State)
	assert.Contains(t, resp.Reply, "window seat please")

	resp = turn(t, ctrl, sess, prof, "confirm")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Nil(t, sess.Draft)

	require.Len(t, bookings.list, 1)
	b := bookings.list[0]
	assert.Equal(t, "r-002", b.RestaurantID)
	assert.Equal(t, time.Now().AddDate(0, 0, 1).Format("2006-01-02"), b.Date)
	assert.Equal(t, "20:00", b.Time)
	assert.Equal(t, 2, b.PartySize)
	assert.Equal(t, "window seat please", b.Notes)

	// profile learning fired
	assert.Equal(t, 1, prof.CuisineLikes["Italian"])
	assert.Equal(t, "Mar Mikhael", prof.LastArea)
	assert.Equal(t, models.BudgetMid, prof.DefaultBudget)

	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, b.ID, reminders.scheduled[0].ID)
}

func TestWalkInSelectionSkipsBooking(t *testing.T) {
	ctrl, bookings, _ := newTestController()
	sess := models.NewSession("acc-2", "")
	prof := &models.Profile{AccountID: "acc-2"}

	sess.State = models.StateRecommend
	sess.LastPicks = []string{"r-004"} // Barbar, walk-in only

	resp := turn(t, ctrl, sess, prof, "book 1")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Contains(t, resp.Reply, "walk in")
	assert.Contains(t, resp.Reply, "BARBAR10")
	assert.Empty(t, bookings.list)
	assert.Nil(t, sess.Draft)
}

func TestResetFromAnyState(t *testing.T) {
	ctrl, _, _ := newTestController()
	sess := models.NewSession("acc-3", "")
	prof := &models.Profile{AccountID: "acc-3"}

	sess.State = models.StateBookingConfirm
	sess.Slots = models.Slots{Area: "Hamra", Budget: models.BudgetHigh}
	sess.Draft = &models.BookingDraft{RestaurantID: "r-002", RestaurantName: "Tavolina"}

	resp := turn(t, ctrl, sess, prof, "reset")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Contains(t, resp.Reply, "Fresh start")
	assert.Empty(t, sess.Slots.Area)
	assert.Nil(t, sess.Draft)
	assert.Equal(t, models.SlotArea, sess.PendingSlot)
}

func TestRejectionEntersRefine(t *testing.T) {
	ctrl, _, _ := newTestController()
	sess := models.NewSession("acc-4", "")
	prof := &models.Profile{AccountID: "acc-4"}

	sess.State = models.StateRecommend
	sess.Slots = models.Slots{Area: "Hamra", MealTime: models.MealDinner, PartySize: 2,
		Budget: models.BudgetMid, CravingCuisines: []string{"Lebanese"}}
	sess.LastPicks = []string{"r-004"}

	resp := turn(t, ctrl, sess, prof, "too expensive for me")
	assert.Equal(t, models.StateRefine, resp.State)

	// naming a category clears that slot and re-enters discovery
	resp = turn(t, ctrl, sess, prof, "change the budget")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Empty(t, sess.Slots.Budget)
	assert.Equal(t, models.SlotBudget, sess.PendingSlot)
	assert.Equal(t, "Hamra", sess.Slots.Area, "other slots survive a refine")
}

func TestDiscoveryRefinementIntentReplacesSlot(t *testing.T) {
	ctrl, _, _ := newTestController()
	sess := models.NewSession("acc-10", "")
	prof := &models.Profile{AccountID: "acc-10"}

	sess.State = models.StateDiscovery
	sess.Slots = models.Slots{Area: "Hamra", CravingCuisines: []string{"Italian"}}

	resp := turn(t, ctrl, sess, prof, "actually, switch to japanese instead")
	assert.Equal(t, string(interpreter.IntentRefinement), resp.Trace.Intent)
	assert.Equal(t, []string{"Japanese"}, sess.Slots.CravingCuisines,
		"a stated refinement replaces the previous value")
	assert.Equal(t, "Hamra", sess.Slots.Area)
}

func TestRefineClearRepresentsWhenStillComplete(t *testing.T) {
	ctrl, _, _ := newTestController()
	sess := models.NewSession("acc-9", "")
	prof := &models.Profile{AccountID: "acc-9"}

	// complete through the meal time even with no cuisine preference
	sess.State = models.StateRefine
	sess.Slots = models.Slots{Area: "Hamra", MealTime: models.MealDinner, PartySize: 2,
		Budget: models.BudgetMid, CravingCuisines: []string{"Italian"}}

	resp := turn(t, ctrl, sess, prof, "change the cuisine")
	assert.Empty(t, sess.Slots.CravingCuisines)
	assert.Equal(t, models.StateRecommend, resp.State,
		"a request that is still complete re-ranks instead of asking")
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, models.SlotNone, sess.PendingSlot)
}

func TestUnknownAreaRepromptsWithExamples(t *testing.T) {
	ctrl, _, _ := newTestController()
	sess := models.NewSession("acc-5", "")
	prof := &models.Profile{AccountID: "acc-5"}

	sess.State = models.StateDiscovery
	sess.PendingSlot = models.SlotArea
	sess.LastQuestion = "Which part of town should I look in?"

	resp := turn(t, ctrl, sess, prof, "Jounieh")
	assert.Equal(t, models.StateDiscovery, resp.State)
	assert.Contains(t, resp.Reply, "Achrafieh")
	assert.Empty(t, sess.Slots.Area)
}

func TestBookingFlowVariantEndToEnd(t *testing.T) {
	ctrl, bookings, _ := newTestController()
	sess := models.NewSession("acc-6", models.FlowBooking)
	prof := &models.Profile{AccountID: "acc-6"}

	require.Equal(t, models.ModeCollecting, sess.Mode)

	resp := turn(t, ctrl, sess, prof, "hi")
	assert.Equal(t, models.SlotArea, sess.PendingSlot)

	turn(t, ctrl, sess, prof, "Badaro")
	assert.Equal(t, "Badaro", sess.Request.Area)

	turn(t, ctrl, sess, prof, "indian")
	assert.Equal(t, "Indian", sess.Request.Cuisine)

	turn(t, ctrl, sess, prof, "mid")
	require.NotNil(t, sess.Request.Budget)
	assert.Equal(t, 2, sess.Request.Budget.Range)

	turn(t, ctrl, sess, prof, "tomorrow")
	assert.NotEmpty(t, sess.Request.Date)

	turn(t, ctrl, sess, prof, "7:30 pm")
	assert.Equal(t, "19:30", sess.Request.Time)

	resp = turn(t, ctrl, sess, prof, "4")
	assert.Equal(t, models.ModeRecommending, sess.Mode)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Bombay Central", resp.Recommendations[0].Restaurant.Name)

	resp = turn(t, ctrl, sess, prof, "book 1")
	assert.Equal(t, models.ModeConfirming, sess.Mode)
	assert.Contains(t, resp.Reply, "Bombay Central")

	resp = turn(t, ctrl, sess, prof, "confirm")
	assert.Equal(t, models.ModeCollecting, sess.Mode)
	require.Len(t, bookings.list, 1)
	assert.Equal(t, "r-015", bookings.list[0].RestaurantID)
	assert.Equal(t, 4, bookings.list[0].PartySize)
	assert.Equal(t, "19:30", bookings.list[0].Time)
}

func TestBookingFlowWalkInPick(t *testing.T) {
	ctrl, bookings, _ := newTestController()
	sess := models.NewSession("acc-7", models.FlowBooking)
	prof := &models.Profile{AccountID: "acc-7"}

	sess.Mode = models.ModeRecommending
	sess.LastPicks = []string{"r-007"} // Ferdinand, walk-in only
	sess.Request = models.ActiveRequest{
		Area: "Hamra", Cuisine: "Burgers",
		Budget:    &models.BudgetLevel{Range: 2, Label: "mid"},
		Date:      "2026-09-05",
		Time:      "20:00",
		PartySize: 2,
	}

	resp := turn(t, ctrl, sess, prof, "book 1")
	assert.Equal(t, models.ModeCollecting, sess.Mode)
	assert.Contains(t, resp.Reply, "FERD5")
	assert.Empty(t, bookings.list)
}
