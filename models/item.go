package models

// Item is a linked external financial account. ItemID and AccessToken are
// assigned by the aggregator during the token exchange; AccessToken is a
// secret and must never appear in responses or logs.
type Item struct {
	UserID      int64  `json:"-"`
	ItemID      string `json:"item_id"`
	AccessToken string `json:"-"`
	Active      bool   `json:"active"`
}
