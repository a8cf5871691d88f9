package domain

import (
	"context"
	"io"
	"time"
)

// Account is the single persisted document per user, keyed by the
// lowercased email address.
type Account struct {
	Email          string     `bson:"_id" json:"email"`
	UserID         string     `bson:"userId" json:"userId"`
	Name           string     `bson:"name" json:"name"`
	Password       string     `bson:"password" json:"-"`
	IsVerified     bool       `bson:"isVerified" json:"-"`
	OTP            *string    `bson:"otp" json:"-"`
	IsResetPending bool       `bson:"is_reset_password" json:"-"`
	AvatarURL      string     `bson:"avatarUrl" json:"avatarUrl"`
	Age            string     `bson:"age,omitempty" json:"age,omitempty"`
	Gender         string     `bson:"gender,omitempty" json:"gender,omitempty"`
	Streak         int        `bson:"streak" json:"streak"`
	LastHit        *time.Time `bson:"lastHit" json:"lastHit"`
}

// AccountRepository is the persistence contract for account documents.
// Create must be atomic create-if-absent and return ErrAccountExists when
// the key is already taken. UpdateFields applies a partial update in a
// single round trip.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	UpdateFields(ctx context.Context, email string, fields map[string]interface{}) error
}

// Mailer delivers out-of-band notifications. Delivery is best effort; the
// caller never waits on an acknowledgement.
type Mailer interface {
	Send(to, subject, body string) error
}

// AvatarStore persists uploaded avatar images and returns their public URL.
type AvatarStore interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}
