package entity

type Review struct {
	BaseSimple
	BookingID   int64   `db:"booking_id"`
	CustomerID  int64   `db:"customer_id"`
	CosplayerID int64   `db:"cosplayer_id"`
	Rating      int     `db:"rating"` // 1-5
	Comment     *string `db:"comment"`
}
