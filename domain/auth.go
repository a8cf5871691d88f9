package domain

import (
	"context"
	"io"

	"github.com/CeKulit/cekulit-backend/utils"
)

type AuthUseCase interface {
	GetTokenManager() *utils.JWTManager
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	Profile(ctx context.Context, email string) (*Account, error)
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (string, error)
	RecordStreakHit(ctx context.Context, email string) (StreakState, error)
}

type LoginResult struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// ProfileUpdate carries the optional profile fields of a PUT /profile call.
// Empty strings mean "leave unchanged"; Avatar is nil when no file was sent.
type ProfileUpdate struct {
	Name   string
	Age    string
	Gender string
	Avatar *AvatarUpload
}

type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
