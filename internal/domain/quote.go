package domain

import "time"

// Quote is a time-boxed currency conversion computed against a rate fetched
// at creation time.
type Quote struct {
	ID              string     `json:"id"`
	From            Currency   `json:"from"`
	To              Currency   `json:"to"`
	Amount          float64    `json:"amount"`
	Rate            float64    `json:"rate"`
	ConvertedAmount float64    `json:"convertedAmount"`
	Timestamp       time.Time  `json:"timestamp"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	UserID          string     `json:"userId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"-"`
}

// IsExpired reports whether the quote is no longer valid at the given
// instant. Expired quotes behave as not-found on lookup; they are not
// deleted.
func (q *Quote) IsExpired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}
