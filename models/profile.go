package models

import "time"

// Profile is the long-lived, cross-session preference accumulator for one
// account. Counters are incremented on booking confirmation and never
// decremented.
type Profile struct {
	AccountID     string         `json:"accountId" bson:"accountId"`
	CuisineLikes  map[string]int `json:"cuisineLikes,omitempty" bson:"cuisineLikes,omitempty"`
	VibeLikes     map[string]int `json:"vibeLikes,omitempty" bson:"vibeLikes,omitempty"`
	DefaultBudget string         `json:"defaultBudget,omitempty" bson:"defaultBudget,omitempty"`
	Dietary       []string       `json:"dietary,omitempty" bson:"dietary,omitempty"`
	LastArea      string         `json:"lastArea,omitempty" bson:"lastArea,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// LikeCuisine increments the counter for one cuisine.
func (p *Profile) LikeCuisine(cuisine string) {
	if p.CuisineLikes == nil {
		p.CuisineLikes = make(map[string]int)
	}
	p.CuisineLikes[cuisine]++
}

// LikeVibe increments the counter for one vibe category.
func (p *Profile) LikeVibe(vibe string) {
	if p.VibeLikes == nil {
		p.VibeLikes = make(map[string]int)
	}
	p.VibeLikes[vibe]++
}
