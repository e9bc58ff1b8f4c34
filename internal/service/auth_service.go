package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/argon2"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/database"
	"github.com/slice-of-life/backend/internal/domain"
)

const (
	// tokenMaturity keeps a freshly issued token unusable for a short window.
	tokenMaturity = 2 * time.Second
	tokenLifetime = 24 * time.Hour

	defaultAvatar = "unknown.jpg"

	uniqueViolation = "23505"
)

type AuthService struct {
	db         DB
	signingKey []byte
}

func NewAuthService(db DB, signingKey string) *AuthService {
	return &AuthService{db: db, signingKey: []byte(signingKey)}
}

type RegisterInput struct {
	Handle    string `json:"handle"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthenticateInput struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account. The availability check and the insert
// share one transaction; a duplicate handle surfaces the same way whether the
// check catches it or the unique constraint on the insert does.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", apierr.Wrap(apierr.Internal, "could not derive salt", err)
	}

	newUser := domain.User{
		Handle:       input.Handle,
		PasswordHash: hashPassword(input.Password, salt),
		Email:        input.Email,
		Salt:         salt,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		ProfilePic:   defaultAvatar,
	}

	err = s.db.WithTransaction(ctx, func(q database.Querier) error {
		existing, err := database.Collect[domain.User](ctx, q, database.SpecificUser(input.Handle))
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errHandleUnavailable(input.Handle)
		}

		if err := database.Exec(ctx, q, database.InsertUser(newUser)); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return errHandleUnavailable(input.Handle)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATED %s", input.Handle), nil
}

// Authenticate checks a handle/password pair and issues a signed token. An
// unknown handle and a wrong password fail identically so nothing leaks about
// which occurred.
func (s *AuthService) Authenticate(ctx context.Context, input AuthenticateInput) (*TokenResponse, error) {
	var token string
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		users, err := database.Collect[domain.User](ctx, q, database.SpecificUser(input.Handle))
		if err != nil {
			return err
		}
		if len(users) != 1 {
			return errInvalidCredentials()
		}

		u := users[0]
		if !verifyPassword(input.Password, u.Salt, u.PasswordHash) {
			return errInvalidCredentials()
		}

		token, err = s.issueToken(input.Handle)
		if err != nil {
			return apierr.Wrap(apierr.Internal, "could not sign token", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

func (s *AuthService) issueToken(handle string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   handle,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(tokenMaturity)),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func errHandleUnavailable(handle string) error {
	return apierr.Newf(apierr.Unauthorized, "%s is not available", handle)
}

func errInvalidCredentials() error {
	return apierr.New(apierr.Unauthorized, "invalid credentials")
}

func newSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

func hashPassword(password, salt string) string {
	hash := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return hex.EncodeToString(hash)
}

func verifyPassword(password, salt, storedHash string) bool {
	computed := hashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
