package entity

// Player is a session-scoped participant. Side holds the textual label of
// the board side the player controls ("A" or "B"), empty until assigned.
type Player struct {
	ID      string `json:"id"`
	Side    string `json:"side,omitempty"`
	MatchID string `json:"match_id,omitempty"`
}
