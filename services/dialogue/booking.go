package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tablemate/models"
	"tablemate/services/interpreter"
	"tablemate/services/recommend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookingCollectTurn walks the draft through date, time, party size and
// notes in fixed order. Each turn fills at most one field; a reply that
// fails validation re-asks the same field without advancing.
func (c *Controller) bookingCollectTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	draft := sess.Draft
	if draft == nil {
		// a collect state without a draft means the session got out of
		// sync; drop back to discovery rather than guess
		sess.State = models.StateDiscovery
		trace.Action = "booking:lost-draft"
		return c.askNext(sess, prof, trace, "Let's pick a place first. ")
	}

	// a stray "book N" mid-collection does not restart the sub-flow
	if _, ok := parseBook(lower); ok {
		trace.Action = "booking:already"
		return c.commit(sess, trace, nil,
			fmt.Sprintf("We're already booking %s — %s", draft.RestaurantName, c.currentDraftQuestion(draft, sess)))
	}

	switch {
	case draft.Date == "":
		date, ok := c.resolveDate(ctx, text)
		if !ok {
			trace.Action = "booking:reprompt-date"
			return c.commit(sess, trace, nil,
				"I didn't catch the date. Try something like 'tomorrow', 'next friday', or 2026-09-05.")
		}
		draft.Date = date
		trace.Action = "booking:date"
		return c.commit(sess, trace, nil, "What time works for you?")

	case draft.Time == "":
		if t, ok := interpreter.ParseClockTime(text); ok {
			draft.Time = t
		} else {
			// keep the reply verbatim; "eight-ish" is a fine time for a
			// simulated reservation
			draft.Time = strings.TrimSpace(text)
		}
		trace.Action = "booking:time"
		return c.commit(sess, trace, nil,
			fmt.Sprintf("How many people? (I'll assume %d if you skip this.)", c.defaultPartySize(sess)))

	case draft.PartySize == 0:
		if n, ok := interpreter.ParsePartySizeReply(text); ok {
			draft.PartySize = n
		} else {
			draft.PartySize = c.defaultPartySize(sess)
		}
		trace.Action = "booking:party"
		return c.commit(sess, trace, nil,
			"Anything else I should pass along to the restaurant? Say no if not.")

	default: // notes
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			trace.Action = "booking:reprompt-notes"
			return c.commit(sess, trace, nil, "Add a note for the restaurant, or say no to skip.")
		}
		if isDecline(lower) {
			draft.Notes = ""
		} else {
			draft.Notes = trimmed
		}
		draft.NotesDone = true
		sess.State = models.StateBookingConfirm
		trace.Action = "booking:summary"
		return c.commit(sess, trace, nil, confirmSummary(draft))
	}
}

// bookingConfirmTurn finalizes or reopens the draft. Only "confirm" and
// "change" advance; anything else re-prompts.
func (c *Controller) bookingConfirmTurn(sess *models.Session, prof *models.Profile, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	draft := sess.Draft
	if draft == nil {
		sess.State = models.StateDiscovery
		trace.Action = "booking:lost-draft"
		return c.commit(sess, trace, nil, "Looks like the booking draft expired. Want to pick a place again?")
	}

	switch {
	case strings.Contains(lower, "confirm") || lower == "yes" || lower == "yep":
		booking := c.finalizeBooking(sess, prof, draft)
		sess.Draft = nil
		sess.SelectedID = ""
		sess.State = models.StateDiscovery
		trace.Action = "booking:confirmed"
		return c.commit(sess, trace, nil, fmt.Sprintf(
			"Booked! %s on %s at %s for %d (ref %s). Anything else I can find for you?",
			booking.RestaurantName, booking.Date, booking.Time, booking.PartySize, booking.ID[:8]))

	case strings.Contains(lower, "change"):
		draft.Date = ""
		draft.Time = ""
		draft.Notes = ""
		draft.NotesDone = false
		draft.PartySize = 0
		sess.State = models.StateBookingCollect
		trace.Action = "booking:change"
		return c.commit(sess, trace, nil,
			fmt.Sprintf("No problem, let's redo %s. What date should I book for?", draft.RestaurantName))

	default:
		trace.Action = "booking:reprompt-confirm"
		return c.commit(sess, trace, nil, "Say 'confirm' to lock it in, or 'change' to adjust the details.")
	}
}

// finalizeBooking persists the record, feeds the profile, and queues
// the reminder. Persistence failures are logged, never surfaced; the
// booking is simulated and the conversation must not stall on storage.
func (c *Controller) finalizeBooking(sess *models.Session, prof *models.Profile, draft *models.BookingDraft) models.Booking {
	booking := models.Booking{
		ID:             uuid.NewString(),
		AccountID:      sess.AccountID,
		RestaurantID:   draft.RestaurantID,
		RestaurantName: draft.RestaurantName,
		Date:           draft.Date,
		Time:           draft.Time,
		PartySize:      draft.PartySize,
		Notes:          draft.Notes,
		CreatedAt:      time.Now().UTC(),
	}

	if c.Bookings != nil {
		if err := c.Bookings.Save(booking); err != nil {
			c.Log.Error("failed to persist booking", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if r, ok := c.Cat.ByID(draft.RestaurantID); ok {
		for _, cuisine := range r.Cuisines {
			prof.LikeCuisine(cuisine)
		}
		for _, vibe := range recommend.VibeCategoriesOf(r.Vibes) {
			prof.LikeVibe(vibe)
		}
		prof.LastArea = r.Area
	}
	if sess.Slots.Budget != "" {
		prof.DefaultBudget = sess.Slots.Budget
	}

	if c.Reminders != nil {
		if err := c.Reminders.ScheduleBookingReminder(booking); err != nil {
			c.Log.Error("failed to schedule booking reminder", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	return booking
}

// resolveDate tries the interpreter first and falls back to local
// relative-date arithmetic.
func (c *Controller) resolveDate(ctx context.Context, text string) (string, bool) {
	if val, err := c.Pipeline.Interp.ValidateSlot(ctx, models.SlotDate, text, nil); err == nil &&
		val.Confidence > interpreter.LowConfidence && val.Normalized != "" {
		return val.Normalized, true
	}
	return ParseRelativeDate(text, time.Now())
}

func (c *Controller) defaultPartySize(sess *models.Session) int {
	if sess.Slots.PartySize > 0 {
		return sess.Slots.PartySize
	}
	return 2
}

func (c *Controller) currentDraftQuestion(draft *models.BookingDraft, sess *models.Session) string {
	switch {
	case draft.Date == "":
		return "what date should I book for?"
	case draft.Time == "":
		return "what time works for you?"
	case draft.PartySize == 0:
		return fmt.Sprintf("how many people? (default %d)", c.defaultPartySize(sess))
	default:
		return "any notes for the restaurant? Say no if not."
	}
}

func isDecline(lower string) bool {
	switch strings.TrimRight(lower, ".!") {
	case "no", "none", "nope", "nothing", "no thanks", "nah":
		return true
	}
	return false
}

func confirmSummary(draft *models.BookingDraft) string {
	notes := draft.Notes
	if notes == "" {
		notes = "none"
	}
	return fmt.Sprintf(
		"Here's the plan: %s, %s at %s, party of %d, notes: %s. Say 'confirm' to book or 'change' to adjust.",
		draft.RestaurantName, draft.Date, draft.Time, draft.PartySize, notes)
}
