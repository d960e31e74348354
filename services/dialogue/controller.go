package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	bookingRepo "tablemate/database/repository/booking"
	profileRepo "tablemate/database/repository/profile"
	"tablemate/models"
	"tablemate/services/catalog"
	"tablemate/services/interpreter"
	"tablemate/services/recommend"

	"go.uber.org/zap"
)

// ReminderScheduler queues a reminder for a confirmed booking.
type ReminderScheduler interface {
	ScheduleBookingReminder(booking models.Booking) error
}

// Controller orchestrates one dialogue turn: it recognizes commands,
// invokes extraction, discovery or recommendation as the state demands,
// runs the booking sub-flow, and emits the next assistant message. It
// mutates the session aggregate it is handed; the caller persists it.
type Controller struct {
	Pipeline  *Pipeline
	Policy    *Policy
	Engine    *recommend.Engine
	Cat       *catalog.Catalog
	Profiles  profileRepo.ProfileRepository
	Bookings  bookingRepo.BookingRepository
	Reminders ReminderScheduler // optional
	Log       *zap.Logger
}

// NewController wires a Controller.
func NewController(pipeline *Pipeline, policy *Policy, engine *recommend.Engine, cat *catalog.Catalog,
	profiles profileRepo.ProfileRepository, bookings bookingRepo.BookingRepository,
	reminders ReminderScheduler, log *zap.Logger) *Controller {
	return &Controller{
		Pipeline:  pipeline,
		Policy:    policy,
		Engine:    engine,
		Cat:       cat,
		Profiles:  profiles,
		Bookings:  bookings,
		Reminders: reminders,
		Log:       log,
	}
}

const apologyReply = "Sorry, something went wrong on my end. Could you say that again?"

// HandleTurn processes one user message and always returns a committed
// response: even an unexpected failure produces an apology turn in
// history rather than a dropped conversation.
func (c *Controller) HandleTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text string) (resp *models.ChatResponse) {
	trace := &models.DecisionTrace{Version: models.TraceVersion, FromState: sess.State}
	sess.Append("user", text)

	defer func() {
		if r := recover(); r != nil {
			c.Log.Error("turn processing panicked", zap.Any("panic", r))
			trace.Action = "apology"
			resp = c.commit(sess, trace, nil, apologyReply)
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(text))

	// commands outrank everything, including the interpreter
	if lower == "reset" || strings.HasPrefix(lower, "reset ") {
		sess.Reset()
		trace.Action = "reset"
		if sess.Flow == models.FlowBooking {
			q := c.Policy.NextRequestQuestion(sess.Request)
			c.arm(sess, q)
			return c.commit(sess, trace, nil, "Fresh start! "+q.Text)
		}
		q := c.Policy.NextQuestion(sess.Slots, *prof)
		c.arm(sess, q)
		return c.commit(sess, trace, nil, "Fresh start! "+q.Text)
	}

	if sess.Flow == models.FlowBooking {
		return c.handleBookingFlowTurn(ctx, sess, prof, text, lower, trace)
	}

	switch sess.State {
	case models.StateWelcome:
		return c.welcomeTurn(ctx, sess, prof, text, trace)
	case models.StateDiscovery:
		return c.discoveryTurn(ctx, sess, prof, text, trace)
	case models.StateRecommend:
		return c.recommendTurn(ctx, sess, prof, text, lower, trace)
	case models.StateRefine:
		return c.refineTurn(ctx, sess, prof, text, lower, trace)
	case models.StateBookingCollect:
		return c.bookingCollectTurn(ctx, sess, prof, text, lower, trace)
	case models.StateBookingConfirm:
		return c.bookingConfirmTurn(sess, prof, lower, trace)
	}

	// unknown state falls back to discovery
	sess.State = models.StateDiscovery
	return c.discoveryTurn(ctx, sess, prof, text, trace)
}

func (c *Controller) welcomeTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text string, trace *models.DecisionTrace) *models.ChatResponse {
	ext := c.Pipeline.Extract(ctx, text, sess.Slots, models.SlotNone, "")
	sess.Slots = Merge(sess.Slots, ext.Fields, false)
	traceExtraction(trace, ext)
	sess.State = models.StateDiscovery

	if sess.Slots.Complete() {
		return c.present(sess, prof, trace, "")
	}
	if reply, ok := c.unavailableReply(ext); ok {
		trace.Action = "reprompt:unavailable"
		return c.commit(sess, trace, nil, reply)
	}
	return c.askNext(sess, prof, trace, "Hi! I can help you find a table. ")
}

func (c *Controller) discoveryTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text string, trace *models.DecisionTrace) *models.ChatResponse {
	// completion is checked before any extraction work
	if sess.Slots.Complete() {
		return c.present(sess, prof, trace, "")
	}

	ext := c.Pipeline.Extract(ctx, text, sess.Slots, sess.PendingSlot, sess.LastQuestion)
	// a stated refinement ("actually, make it ...") may replace set slots
	sess.Slots = Merge(sess.Slots, ext.Fields, ext.Intent == interpreter.IntentRefinement)
	traceExtraction(trace, ext)

	if sess.Slots.Complete() {
		return c.present(sess, prof, trace, "")
	}
	if reply, ok := c.unavailableReply(ext); ok {
		trace.Action = "reprompt:unavailable"
		return c.commit(sess, trace, nil, reply)
	}
	return c.askNext(sess, prof, trace, "")
}

var rejectionCues = []string{
	"too far", "too expensive", "expensive", "pricey", "cheaper",
	"wrong vibe", "not the vibe", "vibe", "not feeling", "don't like", "somewhere else",
}

func (c *Controller) recommendTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	if n, ok := parseSelection(lower); ok {
		return c.handleSelection(sess, n, false, trace)
	}
	if n, ok := parseBook(lower); ok {
		return c.handleSelection(sess, n, true, trace)
	}

	if lower == "more" || lower == "show me more" || lower == "more options" {
		res := c.Engine.Recommend(sess.Slots, *prof, sess.ShownIDs)
		if !hasFreshPick(res, sess.ShownIDs) {
			sess.State = models.StateRefine
			trace.Action = "refine:exhausted"
			return c.commit(sess, trace, nil,
				"I've shown you my best matches already. Want to change the area, budget, or cuisine?")
		}
		return c.present(sess, prof, trace, "A few more ideas. ")
	}

	if lower == "continue" || lower == "continue chat" {
		sess.State = models.StateDiscovery
		trace.Action = "continue"
		return c.commit(sess, trace, nil, "Sure — tell me more about what you're looking for.")
	}

	for _, cue := range rejectionCues {
		if strings.Contains(lower, cue) {
			sess.State = models.StateRefine
			trace.Action = "refine:rejection"
			return c.commit(sess, trace, nil,
				"Fair enough. What should I change — the area, the budget, or the cuisine?")
		}
	}

	// anything else re-enters discovery via a fresh extraction pass
	sess.State = models.StateDiscovery
	return c.discoveryTurn(ctx, sess, prof, text, trace)
}

func (c *Controller) refineTurn(ctx context.Context, sess *models.Session, prof *models.Profile, text, lower string, trace *models.DecisionTrace) *models.ChatResponse {
	cleared := false
	for cue, slot := range map[string]models.SlotType{
		"area": models.SlotArea, "budget": models.SlotBudget, "price": models.SlotBudget,
		"cuisine": models.SlotCuisine, "food": models.SlotCuisine, "vibe": models.SlotVibe,
	} {
		if strings.Contains(lower, cue) {
			sess.Slots.ClearSlot(slot)
			cleared = true
		}
	}
	if cleared {
		sess.State = models.StateDiscovery
		trace.Action = "refine:clear"
		// when the cleared request is still complete, askNext falls
		// through to a fresh ranking instead of asking anything
		return c.askNext(sess, prof, trace, "Got it. ")
	}

	// no explicit category: one more extraction pass may carry an
	// implicit replacement value
	ext := c.Pipeline.Extract(ctx, text, sess.Slots, models.SlotNone, "")
	traceExtraction(trace, ext)
	if !ext.Empty() {
		sess.Slots = Merge(sess.Slots, ext.Fields, true)
		sess.State = models.StateDiscovery
		if sess.Slots.Complete() {
			return c.present(sess, prof, trace, "How about this instead: ")
		}
		return c.askNext(sess, prof, trace, "")
	}

	trace.Action = "refine:clarify"
	return c.commit(sess, trace, nil,
		"Tell me what to change: the area, the budget, or the cuisine.")
}

// handleSelection deals with "2", "pick 1" and "book 3" alike. The
// walk-in-only case never enters the booking sub-flow.
func (c *Controller) handleSelection(sess *models.Session, n int, book bool, trace *models.DecisionTrace) *models.ChatResponse {
	id := sess.SelectedID
	if n > 0 {
		if n > len(sess.LastPicks) {
			trace.Action = "select:invalid"
			return c.commit(sess, trace, nil,
				fmt.Sprintf("I only listed %d options — which number did you mean?", len(sess.LastPicks)))
		}
		id = sess.LastPicks[n-1]
	}
	if id == "" {
		trace.Action = "select:none"
		return c.commit(sess, trace, nil, "Which option? Give me a number, like 'pick 1'.")
	}

	r, ok := c.Cat.ByID(id)
	if !ok {
		trace.Action = "select:missing"
		return c.commit(sess, trace, nil, "Hmm, I lost track of that one. Say 'more' and I'll refresh the list.")
	}

	if !r.Bookable {
		// walk-in only: acknowledge, surface the discount, back to collecting
		sess.State = models.StateDiscovery
		sess.SelectedID = ""
		trace.Action = "select:walk-in"
		reply := fmt.Sprintf("%s doesn't take reservations — just walk in.", r.Name)
		if r.DiscountCode != "" {
			reply += fmt.Sprintf(" Mention code %s for a discount.", r.DiscountCode)
		}
		return c.commit(sess, trace, nil, reply)
	}

	if !book {
		sess.SelectedID = id
		trace.Action = "select"
		return c.commit(sess, trace, nil,
			fmt.Sprintf("Great choice — %s it is. Say 'book %d' and I'll set up the reservation.", r.Name, n))
	}

	sess.Draft = &models.BookingDraft{RestaurantID: r.ID, RestaurantName: r.Name}
	sess.State = models.StateBookingCollect
	sess.SelectedID = id
	trace.Action = "booking:start"
	return c.commit(sess, trace, nil,
		fmt.Sprintf("Let's book %s. %s", r.Name, c.Policy.render(models.SlotDate, models.Profile{})))
}

// present runs the engine and moves to the recommend state.
func (c *Controller) present(sess *models.Session, prof *models.Profile, trace *models.DecisionTrace, preamble string) *models.ChatResponse {
	res := c.Engine.Recommend(sess.Slots, *prof, sess.ShownIDs)
	picks := res.All()

	sess.LastPicks = sess.LastPicks[:0]
	for _, pick := range picks {
		sess.LastPicks = append(sess.LastPicks, pick.Restaurant.ID)
	}
	sess.ShownIDs = appendUnique(sess.ShownIDs, res.Top.Restaurant.ID)
	sess.State = models.StateRecommend
	sess.PendingSlot = models.SlotNone
	sess.LastQuestion = ""

	trace.Action = "recommend"
	trace.Reasons = res.Top.Reasons
	return c.commit(sess, trace, picks, preamble+formatPicks(picks))
}

func formatPicks(picks []models.RecommendedItem) string {
	var sb strings.Builder
	sb.WriteString("Here's what I'd go for:\n")
	for i, pick := range picks {
		sb.WriteString(fmt.Sprintf("%d. %s (%s, %s)", i+1, pick.Restaurant.Name, pick.Restaurant.Area, pick.Restaurant.Price))
		if len(pick.Reasons) > 0 {
			sb.WriteString(" — " + strings.Join(pick.Reasons, "; "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Say a number to pick one, 'book 1' to reserve, or 'more' for other ideas.")
	return sb.String()
}

// askNext arms the next discovery question.
func (c *Controller) askNext(sess *models.Session, prof *models.Profile, trace *models.DecisionTrace, preamble string) *models.ChatResponse {
	q := c.Policy.NextQuestion(sess.Slots, *prof)
	if q == nil {
		return c.present(sess, prof, trace, preamble)
	}
	c.arm(sess, q)
	trace.Action = "ask:" + string(q.Slot)
	return c.commit(sess, trace, nil, preamble+q.Text)
}

func (c *Controller) arm(sess *models.Session, q *Question) {
	if q == nil {
		sess.PendingSlot = models.SlotNone
		sess.LastQuestion = ""
		return
	}
	sess.PendingSlot = q.Slot
	sess.LastQuestion = q.Text
}

// unavailableReply builds the out-of-catalog re-prompt, re-arming the
// pending slot for that category.
func (c *Controller) unavailableReply(ext *Extraction) (string, bool) {
	for _, slot := range ext.Unavailable {
		switch slot {
		case models.SlotArea:
			return fmt.Sprintf("I don't cover that area yet — I know %s. Which of those works?",
				examples(c.Cat.Areas())), true
		case models.SlotCuisine:
			return fmt.Sprintf("I couldn't find that cuisine here. The catalog has %s. Any of those appeal?",
				examples(c.Cat.Cuisines())), true
		}
	}
	return "", false
}

func (c *Controller) commit(sess *models.Session, trace *models.DecisionTrace, recs []models.RecommendedItem, reply string) *models.ChatResponse {
	sess.Append("assistant", reply)
	trace.ToState = sess.State
	return &models.ChatResponse{
		AccountID:       sess.AccountID,
		Reply:           reply,
		State:           sess.State,
		Mode:            sess.Mode,
		Recommendations: recs,
		Trace:           *trace,
	}
}

func traceExtraction(trace *models.DecisionTrace, ext *Extraction) {
	// the intent is known even when every extraction gate rejected
	if ext.Intent != "" {
		trace.Intent = string(ext.Intent)
	}
	if ext.Empty() {
		return
	}
	if trace.Extracted == nil {
		trace.Extracted = map[string]string{}
	}
	s := ext.Fields
	if s.Area != "" {
		trace.Extracted["area"] = s.Area
	}
	if s.MealTime != "" {
		trace.Extracted["mealTime"] = s.MealTime
	}
	if s.PartySize != 0 {
		trace.Extracted["partySize"] = strconv.Itoa(s.PartySize)
	}
	if s.Budget != "" {
		trace.Extracted["budget"] = s.Budget
	}
	if len(s.CravingCuisines) > 0 {
		trace.Extracted["cuisines"] = strings.Join(s.CravingCuisines, ",")
	}
	if s.Vibe != "" {
		trace.Extracted["vibe"] = s.Vibe
	}
	if len(s.Dietary) > 0 {
		trace.Extracted["dietary"] = strings.Join(s.Dietary, ",")
	}
}

var selectionPattern = regexp.MustCompile(`^(?:pick|option|number)?\s*#?\s*([1-9])$`)
var bookPattern = regexp.MustCompile(`^book(?:\s+(?:it|this|that)|\s*#?\s*([1-9]))?$`)

func parseSelection(lower string) (int, bool) {
	m := selectionPattern.FindStringSubmatch(strings.TrimSpace(lower))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBook returns (0, true) for a bare "book"/"book it", which targets
// the already-selected option.
func parseBook(lower string) (int, bool) {
	m := bookPattern.FindStringSubmatch(strings.TrimSpace(lower))
	if m == nil {
		return 0, false
	}
	if m[1] == "" {
		return 0, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func hasFreshPick(res recommend.Result, shownIDs []string) bool {
	shown := map[string]bool{}
	for _, id := range shownIDs {
		shown[id] = true
	}
	for _, pick := range res.All() {
		if !shown[pick.Restaurant.ID] {
			return true
		}
	}
	return false
}
