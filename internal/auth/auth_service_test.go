package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/auth"
	autherrors "github.com/STS-Engineer/rh-app-backend/internal/auth/errors"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	getByEmailFn      func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	getByResetTokenFn func(ctx context.Context, token string) (*auth.User, error)
	updateFn          func(ctx context.Context, u *auth.User) error
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepository) GetByResetToken(ctx context.Context, token string) (*auth.User, error) {
	if f.getByResetTokenFn != nil {
		return f.getByResetTokenFn(ctx, token)
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepository) Update(ctx context.Context, u *auth.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	user := &auth.User{
		ID:       uuid.New(),
		Email:    "admin@rh.com",
		Password: hashPassword(t, "s3cret-pass"),
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(_ context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "admin@rh.com", email)
				return user, nil
			},
		}
		svc := auth.NewService(repo, mailer.NopMailer{})

		token, resp, err := svc.Login(ctx, "admin@rh.com", "s3cret-pass")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID.String(), resp.User.ID)
		assert.Equal(t, "admin@rh.com", resp.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(context.Context, string) (*auth.User, error) { return user, nil },
		}
		svc := auth.NewService(repo, mailer.NopMailer{})

		_, _, err := svc.Login(ctx, "admin@rh.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, mailer.NopMailer{})

		_, _, err := svc.Login(ctx, "nobody@rh.com", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps token and emails the user", func(t *testing.T) {
		var saved *auth.User
		repo := &fakeUserRepository{
			getByEmailFn: func(context.Context, string) (*auth.User, error) {
				return &auth.User{ID: uuid.New(), Email: "admin@rh.com"}, nil
			},
			updateFn: func(_ context.Context, u *auth.User) error {
				saved = u
				return nil
			},
		}
		mail := &recordingMailer{}
		svc := auth.NewService(repo, mail)

		sent := svc.RequestPasswordReset(ctx, "admin@rh.com")
		assert.True(t, sent)
		assert.NotNil(t, saved)
		assert.NotNil(t, saved.ResetToken)
		assert.NotNil(t, saved.ResetTokenExpiresAt)
		assert.Len(t, mail.sent, 1)
		assert.Equal(t, []string{"admin@rh.com"}, mail.sent[0].To)
	})

	t.Run("unknown account does not error and sends nothing", func(t *testing.T) {
		mail := &recordingMailer{}
		svc := auth.NewService(&fakeUserRepository{}, mail)

		sent := svc.RequestPasswordReset(ctx, "nobody@rh.com")
		assert.False(t, sent)
		assert.Empty(t, mail.sent)
	})

	t.Run("smtp failure reported as flag", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(context.Context, string) (*auth.User, error) {
				return &auth.User{ID: uuid.New(), Email: "admin@rh.com"}, nil
			},
		}
		mail := &recordingMailer{err: errors.New("relay down")}
		svc := auth.NewService(repo, mail)

		sent := svc.RequestPasswordReset(ctx, "admin@rh.com")
		assert.False(t, sent)
	})
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	validToken := "abc123"
	future := time.Now().UTC().Add(30 * time.Minute)
	past := time.Now().UTC().Add(-time.Minute)

	t.Run("success clears token and rehashes password", func(t *testing.T) {
		var saved *auth.User
		repo := &fakeUserRepository{
			getByResetTokenFn: func(_ context.Context, token string) (*auth.User, error) {
				assert.Equal(t, validToken, token)
				return &auth.User{
					ID:                  uuid.New(),
					Email:               "admin@rh.com",
					ResetToken:          &validToken,
					ResetTokenExpiresAt: &future,
				}, nil
			},
			updateFn: func(_ context.Context, u *auth.User) error {
				saved = u
				return nil
			},
		}
		svc := auth.NewService(repo, mailer.NopMailer{})

		err := svc.ConfirmPasswordReset(ctx, validToken, "new-password-123")
		assert.NoError(t, err)
		assert.Nil(t, saved.ResetToken)
		assert.Nil(t, saved.ResetTokenExpiresAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("new-password-123")))
	})

	t.Run("expired token rejected", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByResetTokenFn: func(context.Context, string) (*auth.User, error) {
				return &auth.User{ResetToken: &validToken, ResetTokenExpiresAt: &past}, nil
			},
		}
		svc := auth.NewService(repo, mailer.NopMailer{})

		err := svc.ConfirmPasswordReset(ctx, validToken, "new-password-123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, mailer.NopMailer{})

		err := svc.ConfirmPasswordReset(ctx, "nope", "new-password-123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})
}
