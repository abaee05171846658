package entity

import "github.com/shopspring/decimal"

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleCosplayer UserRole = "cosplayer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleCosplayer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Username      string          `db:"username"`
	Email         string          `db:"email"`
	PasswordHash  string          `db:"password"`
	Phone         *string         `db:"phone"`
	FullName      *string         `db:"full_name"`
	AvatarURL     *string         `db:"avatar_url"`
	Role          UserRole        `db:"role"`
	EmailVerified bool            `db:"email_verified"`
	IsActive      bool            `db:"is_active"`
	WalletBalance decimal.Decimal `db:"wallet_balance"` // cache of completed wallet transactions
}
