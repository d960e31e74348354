package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tablemate/models"
	"tablemate/services/interpreter"
)

// handleBookingFlowTurn drives the mode-based variant, where every
// reservation detail is collected up front and the recommendation step
// leads straight to confirmation.
func (c *Controller) handleBookingFlowTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	switch sess.Mode {
	case models.ModeRecommending:
		return c.requestRecommendingTurn(ctx, sess, prof, text, lower, trace)
	case models.ModeConfirming:
		return c.requestConfirmingTurn(sess, prof, lower, trace)
	default:
		return c.requestCollectingTurn(ctx, sess, prof, text, trace)
	}
}

func (c *Controller) requestCollectingTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text string, trace *models.DecisionTrace) *models.ChatResponse {
	if interpreter.IsGreeting(text) && sess.Request == (models.ActiveRequest{}) {
		q := c.Policy.NextRequestQuestion(sess.Request)
		c.arm(sess, q)
		trace.Action = "ask:" + string(q.Slot)
		return c.commit(sess, trace, nil, "Hi! Let's set up your reservation. "+q.Text)
	}

	c.fillRequest(ctx, sess, text, trace)

	if sess.Request.Complete() {
		return c.presentRequest(sess, trace)
	}
	q := c.Policy.NextRequestQuestion(sess.Request)
	c.arm(sess, q)
	trace.Action = "ask:" + string(q.Slot)
	return c.commit(sess, trace, nil, q.Text)
}

// fillRequest validates a pending answer first, then sweeps the message
// for any other fields. Filled fields are never overwritten.
func (c *Controller) fillRequest(ctx context.Context, sess *models.Session, text string, trace *models.DecisionTrace) {
	req := &sess.Request
	pending := sess.PendingSlot

	if pending != models.SlotNone {
		c.fillRequestSlot(ctx, req, pending, text, trace)
	}

	cls, err := c.Pipeline.Interp.ClassifyAndExtract(ctx, text)
	if err != nil || cls == nil {
		return
	}
	ex := cls.Extracted

	if req.Area == "" && ex.Area != "" {
		res, rerr := c.Pipeline.Interp.NormalizeToCatalog(ctx, ex.Area, "", c.Cat.Areas(), nil)
		if rerr == nil && res.Area.Matched != "" && res.Area.Confidence > interpreter.LowConfidence {
			req.Area = res.Area.Matched
			traceField(trace, "area", req.Area)
		}
	}
	if req.Cuisine == "" && len(ex.Cuisines) > 0 {
		res, rerr := c.Pipeline.Interp.NormalizeToCatalog(ctx, "", ex.Cuisines[0], nil, c.Cat.Cuisines())
		if rerr == nil && res.Cuisine.Matched != "" && res.Cuisine.Confidence > interpreter.LowConfidence {
			req.Cuisine = res.Cuisine.Matched
			traceField(trace, "cuisine", req.Cuisine)
		}
	}
	if req.Budget == nil && interpreter.HasBudgetCue(text) {
		if level, ok := interpreter.MapBudget(text); ok {
			req.Budget = &level
			traceField(trace, "budget", level.Label)
		}
	}
	if req.PartySize == 0 {
		if n, ok := interpreter.ParsePartySize(text); ok {
			req.PartySize = n
			traceField(trace, "partySize", fmt.Sprintf("%d", n))
		}
	}
	if req.Date == "" {
		if date, ok := ParseRelativeDate(text, time.Now()); ok {
			req.Date = date
			traceField(trace, "date", date)
		}
	}
	if req.Time == "" {
		if t, ok := interpreter.ParseClockTime(text); ok {
			req.Time = t
			traceField(trace, "time", t)
		}
	}
}

// fillRequestSlot validates the reply against the slot that was just
// asked. Date and time accept looser input here than the free sweep.
func (c *Controller) fillRequestSlot(ctx context.Context, req *models.ActiveRequest, slot models.SlotType, text string, trace *models.DecisionTrace) {
	switch slot {
	case models.SlotArea:
		val, err := c.Pipeline.Interp.ValidateSlot(ctx, slot, text, c.Cat.Areas())
		if err == nil && val.Normalized != "" && val.Confidence > interpreter.LowConfidence {
			req.Area = val.Normalized
			traceField(trace, "area", req.Area)
		}
	case models.SlotCuisine:
		val, err := c.Pipeline.Interp.ValidateSlot(ctx, slot, text, c.Cat.Cuisines())
		if err == nil && val.Normalized != "" && val.Confidence > interpreter.LowConfidence {
			req.Cuisine = val.Normalized
			traceField(trace, "cuisine", req.Cuisine)
		}
	case models.SlotBudget:
		if level, ok := interpreter.MapBudgetReply(text); ok {
			req.Budget = &level
			traceField(trace, "budget", level.Label)
		}
	case models.SlotDate:
		if date, ok := c.resolveDate(ctx, text); ok {
			req.Date = date
			traceField(trace, "date", date)
		}
	case models.SlotTime:
		if t, ok := interpreter.ParseClockTime(text); ok {
			req.Time = t
		} else if trimmed := strings.TrimSpace(text); trimmed != "" {
			req.Time = trimmed
		}
		traceField(trace, "time", req.Time)
	case models.SlotPartySize:
		if n, ok := interpreter.ParsePartySizeReply(text); ok {
			req.PartySize = n
			traceField(trace, "partySize", fmt.Sprintf("%d", n))
		}
	}
}

func (c *Controller) presentRequest(sess *models.Session, trace *models.DecisionTrace) *models.ChatResponse {
	res := c.Engine.RecommendRequest(sess.Request)
	picks := res.All()
	if len(picks) == 0 {
		sess.Mode = models.ModeCollecting
		sess.Request.Area = ""
		trace.Action = "recommend:empty"
		return c.commit(sess, trace, nil,
			fmt.Sprintf("I couldn't find anything in that area. I cover %s — which should I try?",
				examples(c.Cat.Areas())))
	}

	sess.LastPicks = sess.LastPicks[:0]
	for _, pick := range picks {
		sess.LastPicks = append(sess.LastPicks, pick.Restaurant.ID)
	}
	sess.Mode = models.ModeRecommending
	sess.PendingSlot = models.SlotNone
	sess.LastQuestion = ""
	trace.Action = "recommend"
	trace.Reasons = res.Top.Reasons

	reply := formatPicks(picks)
	reply = strings.Replace(reply,
		"Say a number to pick one, 'book 1' to reserve, or 'more' for other ideas.",
		"Say 'book 1' to reserve, or 'continue' to tweak the request.", 1)
	return c.commit(sess, trace, picks, reply)
}

func (c *Controller) requestRecommendingTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	n, isBook := parseBook(lower)
	if !isBook {
		n, isBook = parseSelection(lower)
	}
	if isBook {
		if n < 1 || n > len(sess.LastPicks) {
			trace.Action = "select:invalid"
			return c.commit(sess, trace, nil,
				fmt.Sprintf("Give me a number between 1 and %d.", len(sess.LastPicks)))
		}
		r, ok := c.Cat.ByID(sess.LastPicks[n-1])
		if !ok {
			trace.Action = "select:missing"
			return c.commit(sess, trace, nil, "I lost track of that one, sorry. Pick another number?")
		}
		if !r.Bookable {
			sess.Mode = models.ModeCollecting
			trace.Action = "select:walk-in"
			reply := fmt.Sprintf("%s doesn't take reservations — just walk in.", r.Name)
			if r.DiscountCode != "" {
				reply += fmt.Sprintf(" Mention code %s for a discount.", r.DiscountCode)
			}
			return c.commit(sess, trace, nil, reply)
		}
		sess.SelectedID = r.ID
		sess.Mode = models.ModeConfirming
		trace.Action = "booking:summary"
		return c.commit(sess, trace, nil, requestSummary(r.Name, sess.Request))
	}

	if lower == "continue" || lower == "continue chat" {
		sess.Mode = models.ModeCollecting
		trace.Action = "continue"
		return c.commit(sess, trace, nil, "Sure — what should I adjust?")
	}

	// anything else is treated as a request tweak
	sess.Mode = models.ModeCollecting
	return c.requestCollectingTurn(ctx, sess, prof, text, trace)
}

func (c *Controller) requestConfirmingTurn(sess *models.Session, prof *models.Profile, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	r, ok := c.Cat.ByID(sess.SelectedID)
	if !ok {
		sess.Mode = models.ModeCollecting
		trace.Action = "booking:lost-draft"
		return c.commit(sess, trace, nil, "I lost the selection, sorry. Let's pick a place again.")
	}

	switch {
	case strings.Contains(lower, "confirm") || lower == "yes" || lower == "yep":
		draft := &models.BookingDraft{
			RestaurantID:   r.ID,
			RestaurantName: r.Name,
			Date:           sess.Request.Date,
			Time:           sess.Request.Time,
			PartySize:      sess.Request.PartySize,
			Notes:          sess.Request.Notes,
		}
		booking := c.finalizeBooking(sess, prof, draft)
		sess.Request.Clear()
		sess.SelectedID = ""
		sess.Mode = models.ModeCollecting
		sess.LastPicks = nil
		trace.Action = "booking:confirmed"
		return c.commit(sess, trace, nil, fmt.Sprintf(
			"Booked! %s on %s at %s for %d (ref %s). Want to set up another one?",
			booking.RestaurantName, booking.Date, booking.Time, booking.PartySize, booking.ID[:8]))

	case strings.Contains(lower, "change"):
		sess.Request.Date = ""
		sess.Request.Time = ""
		sess.Request.Notes = ""
		sess.Mode = models.ModeCollecting
		trace.Action = "booking:change"
		q := c.Policy.NextRequestQuestion(sess.Request)
		c.arm(sess, q)
		return c.commit(sess, trace, nil, "Sure, let's adjust. "+q.Text)

	default:
		trace.Action = "booking:reprompt-confirm"
		return c.commit(sess, trace, nil, "Say 'confirm' to lock it in, or 'change' to adjust the details.")
	}
}

func requestSummary(name string, req models.ActiveRequest) string {
	return fmt.Sprintf(
		"Here's the plan: %s, %s at %s, party of %d. Say 'confirm' to book or 'change' to adjust.",
		name, req.Date, req.Time, req.PartySize)
}

func traceField(trace *models.DecisionTrace, key, value string) {
	if trace.Extracted == nil {
		trace.Extracted = map[string]string{}
	}
	trace.Extracted[key] = value
}
