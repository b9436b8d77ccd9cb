package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	autherrors "github.com/STS-Engineer/rh-app-backend/internal/auth/errors"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL      = 24 * time.Hour
	resetTokenTTL = time.Hour
)

type Service interface {
	Login(ctx context.Context, email, password string) (string, LoginResponse, error)
	// RequestPasswordReset always succeeds from the caller's point of view
	// so the endpoint cannot be used to enumerate accounts. The returned
	// flag reports whether the notification email actually went out.
	RequestPasswordReset(ctx context.Context, email string) bool
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo   Repository
	mail   mailer.Mailer
	logger *zap.Logger
}

func NewService(repo Repository, mail mailer.Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, mail: mail, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID.String(), user.Email, tokenTTL)
	if err != nil {
		return "", LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))

	return token, LoginResponse{
		Token: token,
		User: UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
		},
	}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) bool {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown account: report success, send nothing.
		s.logger.Debug("password reset for unknown email", zap.String("email", email))
		return false
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		s.logger.Error("reset token generation failed", zap.Error(err))
		return false
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().UTC().Add(resetTokenTTL)

	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expires
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("persist reset token failed", zap.Error(err))
		return false
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("FRONTEND_URL"), token)
	if err := s.mail.Send(ctx, withRecipient(mailer.PasswordReset(resetURL), user.Email)); err != nil {
		s.logger.Warn("password reset email failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return false
	}

	return true
}

func (s *service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		return autherrors.ErrInvalidResetToken
	}
	if user.ResetTokenExpiresAt == nil || time.Now().UTC().After(*user.ResetTokenExpiresAt) {
		return autherrors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("persist new password failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *service) generateToken(userID, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func withRecipient(msg mailer.Message, to string) mailer.Message {
	msg.To = []string{to}
	return msg
}
