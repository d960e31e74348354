package models

import "time"

// DialogueState enumerates the turn state machine. Welcome is entered only
// when no message history exists; there is no terminal state.
type DialogueState string

const (
	StateWelcome        DialogueState = "WELCOME"
	StateDiscovery      DialogueState = "DISCOVERY"
	StateRecommend      DialogueState = "RECOMMEND"
	StateRefine         DialogueState = "REFINE"
	StateBookingCollect DialogueState = "BOOKING_COLLECT"
	StateBookingConfirm DialogueState = "BOOKING_CONFIRM"
)

// Flow variants carried by a session.
const (
	FlowConcierge = "concierge" // Slots-based discovery flow
	FlowBooking   = "booking"   // ActiveRequest-based mode flow
)

// Modes of the booking flow variant.
const (
	ModeCollecting   = "collecting"
	ModeRecommending = "recommending"
	ModeConfirming   = "confirming"
)

// Message is one history entry.
type Message struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// BookingDraft is the transient booking sub-flow entity. Created on a
// "book" selection, discarded on confirm or cancel.
type BookingDraft struct {
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	PartySize      int    `json:"partySize,omitempty"`
	Notes          string `json:"notes,omitempty"`
	NotesDone      bool   `json:"notesDone,omitempty"`
}

// Session is the full per-account dialogue aggregate. The controller
// receives it, mutates it over one turn and hands it back for the caller
// to persist; nothing dialogue-scoped lives outside it.
type Session struct {
	AccountID string        `json:"accountId"`
	Flow      string        `json:"flow"`
	State     DialogueState `json:"state"`
	Mode      string        `json:"mode,omitempty"` // booking-flow variant only

	Slots   Slots         `json:"slots"`
	Request ActiveRequest `json:"request"`

	// PendingSlot and LastQuestion describe the question asked last turn;
	// they scope the next extraction pass.
	PendingSlot  SlotType `json:"pendingSlot,omitempty"`
	LastQuestion string   `json:"lastQuestion,omitempty"`

	History []Message `json:"history"`

	// LastPicks maps the 1-based option numbers of the latest
	// recommendation onto restaurant ids.
	LastPicks []string `json:"lastPicks,omitempty"`
	// ShownIDs accumulates previously surfaced top picks for
	// diversification.
	ShownIDs []string `json:"shownIds,omitempty"`
	// SelectedID is set once the user picks an option.
	SelectedID string `json:"selectedId,omitempty"`

	Draft *BookingDraft `json:"draft,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns a fresh session for the given account and flow.
func NewSession(accountID, flow string) *Session {
	if flow == "" {
		flow = FlowConcierge
	}
	s := &Session{
		AccountID: accountID,
		Flow:      flow,
		State:     StateWelcome,
		UpdatedAt: time.Now(),
	}
	if flow == FlowBooking {
		s.Mode = ModeCollecting
	}
	return s
}

// Reset clears everything request-scoped and returns the session to a
// fresh discovery-equivalent state. History is kept.
func (s *Session) Reset() {
	s.Slots.Clear()
	s.Request.Clear()
	s.State = StateDiscovery
	if s.Flow == FlowBooking {
		s.Mode = ModeCollecting
	}
	s.PendingSlot = SlotNone
	s.LastQuestion = ""
	s.LastPicks = nil
	s.ShownIDs = nil
	s.SelectedID = ""
	s.Draft = nil
}

// Append adds a history entry.
func (s *Session) Append(role, text string) {
	s.History = append(s.History, Message{Role: role, Text: text, At: time.Now()})
}

// DecisionTrace is the structured per-turn trace attached to every chat
// response in place of ad hoc debug payloads.
type DecisionTrace struct {
	Version   int               `json:"version"`
	Intent    string            `json:"intent,omitempty"`
	FromState DialogueState     `json:"fromState"`
	ToState   DialogueState     `json:"toState"`
	Extracted map[string]string `json:"extracted,omitempty"`
	Action    string            `json:"action"`
	Reasons   []string          `json:"reasons,omitempty"`
}

// TraceVersion is bumped whenever DecisionTrace changes shape.
const TraceVersion = 1
