package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/CeKulit/cekulit-backend/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type authService struct {
	accounts         domain.AccountRepository
	avatars          domain.AvatarStore
	mailer           domain.Mailer
	tokenManager     *utils.JWTManager
	defaultAvatarURL string
}

func NewAuthService(accounts domain.AccountRepository, avatars domain.AvatarStore, mailer domain.Mailer, jwtSecret, defaultAvatarURL string) domain.AuthUseCase {
	return &authService{
		accounts:         accounts,
		avatars:          avatars,
		mailer:           mailer,
		tokenManager:     utils.NewJWTManager(jwtSecret, time.Hour),
		defaultAvatarURL: defaultAvatarURL,
	}
}

func (s *authService) GetTokenManager() *utils.JWTManager {
	return s.tokenManager
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sendOTP dispatches the challenge out-of-band. Delivery is fire and
// forget: the account state is already persisted and the user can always
// request a fresh code.
func (s *authService) sendOTP(email, otp string) {
	go func() {
		subject := "Your OTP Code"
		body := fmt.Sprintf("<p>Hello,</p><p>Your OTP code is: <b>%s</b></p>", otp)
		if err := s.mailer.Send(email, subject, body); err != nil {
			log.Error().Err(err).Str("email", email).Msg("Failed to send OTP email")
		}
	}()
}

func (s *authService) Register(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	now := time.Now()
	account := &domain.Account{
		Email:      email,
		UserID:     uuid.NewString(),
		Name:       name,
		Password:   hashed,
		IsVerified: false,
		OTP:        &otp,
		AvatarURL:  s.defaultAvatarURL,
		Streak:     0,
		LastHit:    &now,
	}

	// The insert doubles as the duplicate check, so two racing
	// registrations cannot both win.
	if err := s.accounts.Create(ctx, account); err != nil {
		return err
	}

	s.sendOTP(email, otp)
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !account.IsVerified {
		return nil, domain.ErrNotVerified
	}

	if !utils.CheckPassword(password, account.Password) {
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.tokenManager.GenerateToken(account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.LoginResult{UserID: account.UserID, Token: token}, nil
}

// VerifyOTP consumes the outstanding challenge. It serves both initial
// account verification and the OTP step of the password-reset flow; the
// is_reset_password flag tells the two apart.
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if account.IsVerified && !account.IsResetPending {
		return domain.ErrAlreadyVerified
	}

	if !utils.OTPMatches(otp, account.OTP) {
		return domain.ErrInvalidOTP
	}

	return s.accounts.UpdateFields(ctx, account.Email, map[string]interface{}{
		"isVerified": true,
		"otp":        nil,
	})
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.accounts.GetByEmail(ctx, email); err != nil {
		return err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	err = s.accounts.UpdateFields(ctx, email, map[string]interface{}{
		"otp":               otp,
		"is_reset_password": true,
	})
	if err != nil {
		return err
	}

	s.sendOTP(email, otp)
	return nil
}

// ResetPassword finishes the reset flow. It requires the reset flag set and
// the challenge already consumed through VerifyOTP, so a stolen email alone
// is not enough to overwrite the password.
func (s *authService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !account.IsResetPending || account.OTP != nil {
		return domain.ErrResetNotPermitted
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.accounts.UpdateFields(ctx, email, map[string]interface{}{
		"password":          hashed,
		"is_reset_password": false,
	})
}

func (s *authService) Profile(ctx context.Context, email string) (*domain.Account, error) {
	return s.accounts.GetByEmail(ctx, normalizeEmail(email))
}

func (s *authService) UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) (string, error) {
	email = normalizeEmail(email)
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	fields := map[string]interface{}{}
	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.Age != "" {
		fields["age"] = update.Age
	}
	if update.Gender != "" {
		fields["gender"] = update.Gender
	}

	avatarURL := account.AvatarURL
	if update.Avatar != nil {
		url, err := s.avatars.Upload(ctx, update.Avatar.Filename, update.Avatar.ContentType, update.Avatar.Size, update.Avatar.Body)
		if err != nil {
			return "", err
		}
		avatarURL = url
		fields["avatarUrl"] = url
	}

	if len(fields) == 0 {
		return avatarURL, nil
	}

	if err := s.accounts.UpdateFields(ctx, email, fields); err != nil {
		return "", err
	}
	return avatarURL, nil
}

// RecordStreakHit applies the streak rule to the stored values. The
// read-modify-write is not atomic against the store; concurrent hits for
// the same account are last-writer-wins.
func (s *authService) RecordStreakHit(ctx context.Context, email string) (domain.StreakState, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.StreakState{}, err
	}

	next := domain.NextStreak(domain.StreakState{Streak: account.Streak, LastHit: account.LastHit}, time.Now())

	err = s.accounts.UpdateFields(ctx, account.Email, map[string]interface{}{
		"streak":  next.Streak,
		"lastHit": *next.LastHit,
	})
	if err != nil {
		return domain.StreakState{}, err
	}

	return next, nil
}
