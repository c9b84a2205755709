package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/markgregr/taskflow_REST_server/internal/lib/jwt"
	"github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/notify"
	"github.com/markgregr/taskflow_REST_server/internal/storage"
)

var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAlreadyLoggedOut     = errors.New("already logged out")
	ErrIncorrectOldPassword = errors.New("incorrect old password")
	ErrPasswordReused       = errors.New("new password matches the old one")
	ErrInvalidResetToken    = errors.New("invalid reset token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenBlacklisted     = errors.New("token blacklisted or inactive")
)

const (
	bcryptCost    = 10
	resetTokenTTL = 10 * time.Minute
)

// Service owns the credential store side effects: token issuance, the
// single-active-token field, the blacklist, and the password lifecycle.
type Service struct {
	log       *logrus.Entry
	store     *storage.Storage
	mailer    notify.Mailer
	secret    string
	tokenTTL  time.Duration
	clientURL string
}

func New(log *logrus.Logger, store *storage.Storage, mailer notify.Mailer, secret string, tokenTTL time.Duration, clientURL string) *Service {
	return &Service{
		log:       logrus.NewEntry(log),
		store:     store,
		mailer:    mailer,
		secret:    secret,
		tokenTTL:  tokenTTL,
		clientURL: clientURL,
	}
}

// Signup registers a new account and issues its first session token. The
// welcome email is best effort and never fails the signup.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*models.User, string, error) {
	const op = "auth.Service.Signup"

	if _, err := s.store.UserByEmail(email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		FullName:          fullName,
		Email:             email,
		Password:          string(hash),
		BlacklistedTokens: models.TokenList{},
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.Send(ctx, user.Email, "Welcome to Taskflow!", welcomeHTML(user.FullName)); err != nil {
		s.log.WithError(err).WithField("operation", op).Error("failed to send welcome email")
	}

	return user, token, nil
}

// Login verifies credentials, wipes the blacklist for a fresh session
// context and issues a new active token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Service.Login"

	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	var token string
	err = s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByID(user.ID)
		if err != nil {
			return err
		}
		u.BlacklistedTokens = models.TokenList{}
		token, err = jwt.NewToken(u.ID, s.secret, s.tokenTTL)
		if err != nil {
			return err
		}
		u.AccessToken = &token
		return tx.SaveUser(u)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Logout blacklists the presented token and clears the active token and
// push address. A second logout with the same token is unauthorized, not a
// no-op.
func (s *Service) Logout(ctx context.Context, userID, token string) error {
	const op = "auth.Service.Logout"

	err := s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByID(userID)
		if err != nil {
			return err
		}
		if u.BlacklistedTokens.Contains(token) {
			return ErrAlreadyLoggedOut
		}
		u.BlacklistedTokens = append(u.BlacklistedTokens, token)
		u.AccessToken = nil
		u.PushToken = nil
		return tx.SaveUser(u)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyLoggedOut) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChangePassword re-hashes the password and blacklists the token that
// authorized the change, forcing a re-login. The active-token field itself
// is left alone; the blacklist check rejects the token from now on.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, token string) error {
	const op = "auth.Service.ChangePassword"

	err := s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByID(userID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
			return ErrIncorrectOldPassword
		}
		if oldPassword == newPassword {
			return ErrPasswordReused
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.BlacklistedTokens = append(u.BlacklistedTokens, token)
		u.UpdatedBy = &u.ID
		return tx.SaveUser(u)
	})
	if err != nil {
		if errors.Is(err, ErrIncorrectOldPassword) || errors.Is(err, ErrPasswordReused) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ForgotPassword stores a single-use reset token with a short expiry and
// mails a reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.Service.ForgotPassword"

	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	resetToken := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	user.ResetToken = &resetToken
	user.ResetTokenExpiry = &expiry
	if err := s.store.SaveUser(user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, resetToken)
	if err := s.mailer.Send(ctx, user.Email, "Reset Your Password", resetHTML(user.FullName, link)); err != nil {
		s.log.WithError(err).WithField("operation", op).Error("failed to send reset email")
	}
	return nil
}

// ResetPassword consumes a live reset token. Expired or mismatched tokens
// are rejected; a successful reset clears both reset fields so the token
// cannot be replayed.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	const op = "auth.Service.ResetPassword"

	err := s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByResetToken(email, token, time.Now())
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.ResetToken = nil
		u.ResetTokenExpiry = nil
		return tx.SaveUser(u)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Authenticate is the guard's resolution step: verify the token, resolve a
// live user, and check the session state. Read-only.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.Service.Authenticate"

	userID, err := jwt.Parse(token, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.AccessToken == nil || *user.AccessToken != token || user.BlacklistedTokens.Contains(token) {
		return nil, ErrTokenBlacklisted
	}
	return user, nil
}

// UpdateProfile applies a partial profile update: full name and/or push
// device registration.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fullName, pushToken *string) (*models.User, error) {
	const op = "auth.Service.UpdateProfile"

	var updated *models.User
	err := s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByID(userID)
		if err != nil {
			return err
		}
		if fullName != nil {
			u.FullName = *fullName
		}
		if pushToken != nil {
			u.PushToken = pushToken
		}
		u.UpdatedBy = &u.ID
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteAccount soft-deletes the user and applies the explicit cascade:
// the current token is blacklisted, authored comments are detached from
// the author, and assigned tasks go back to the unassigned pool.
func (s *Service) DeleteAccount(ctx context.Context, userID, token string) error {
	const op = "auth.Service.DeleteAccount"

	err := s.store.Transaction(func(tx *storage.Storage) error {
		u, err := tx.UserByID(userID)
		if err != nil {
			return err
		}
		now := time.Now()
		u.IsDeleted = true
		u.DeletedAt = &now
		u.DeletedBy = &u.ID
		u.BlacklistedTokens = append(u.BlacklistedTokens, token)
		u.AccessToken = nil
		u.PushToken = nil
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		if err := tx.DetachUserComments(u.ID); err != nil {
			return err
		}
		return tx.UnassignUserTasks(u.ID)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	token, err := jwt.NewToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", err
	}
	user.AccessToken = &token
	if err := s.store.SaveUser(user); err != nil {
		return "", err
	}
	return token, nil
}

func welcomeHTML(fullName string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #ddd; padding: 20px; border-radius: 8px;">
  <h2 style="color: #333;">Hey...</h2>
  <p>Hello <strong>%s</strong>, welcome to the task management tool.</p>
  <p>We received your details. Glad to have you on board!</p>
</div>`, fullName)
}

func resetHTML(fullName, link string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Password Reset Request</h2>
  <p>Hello <strong>%s</strong>,</p>
  <p>Click the link below to reset your password:</p>
  <a href="%s" style="display: inline-block; background-color: #007bff; color: #fff; padding: 10px 20px; text-decoration: none;">Reset Password</a>
  <p>This link will expire in 10 minutes.</p>
</div>`, fullName, link)
}
