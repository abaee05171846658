package entity

import "github.com/shopspring/decimal"

// Cosplayer extends a User with the public profile customers book against.
type Cosplayer struct {
	BaseNoDelete
	UserID       int64           `db:"user_id"`
	DisplayName  string          `db:"display_name"`
	Bio          *string         `db:"bio"`
	Category     *string         `db:"category"`
	AvatarURL    *string         `db:"avatar_url"`
	PricePerHour decimal.Decimal `db:"price_per_hour"`
	Rating       float64         `db:"rating"`
	TotalReviews int             `db:"total_reviews"`
	IsAvailable  bool            `db:"is_available"`
}
