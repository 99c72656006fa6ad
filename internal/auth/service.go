// Package auth handles passwords, bearer tokens and the login/register flow.
package auth

import (
	"context"
	"github.com/shopfront/shopfront-api/internal/apperr"
	"github.com/shopfront/shopfront-api/internal/logging"
	"github.com/shopfront/shopfront-api/internal/users"
	"strings"
)

type UserStore interface {
	Credentials(ctx context.Context, username string) (users.Credentials, bool, error)
	Insert(ctx context.Context, u users.NewUser) (int64, error)
	Get(ctx context.Context, id int64) (users.User, bool, error)
}

var (
	ErrNoToken      = apperr.Unauthorized("No token provided.")
	ErrInvalidToken = apperr.Unauthorized("Invalid token.")
	ErrUserNotFound = apperr.NotFound("User not found.")
	ErrBadPassword  = apperr.Unauthorized("Invalid password.")
)

// Service is the authentication flow. Revoker may be nil, in which case
// logout has no server-side effect.
type Service struct {
	Users       UserStore
	Tokens      *Tokens
	Revoker     *Revoker
	ServiceName string
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	RoleID   *int   `json:"roleId"`
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperr.Invalid("username and password are required")
	}
	cred, found, err := s.Users.Credentials(ctx, username)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrUserNotFound
	}
	if !CheckPassword(cred.PasswordHash, password) {
		return "", ErrBadPassword
	}
	token, _, err := s.Tokens.Issue(cred.UserID, cred.RoleID)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return 0, apperr.Invalid("username is required")
	case in.Password == "":
		return 0, apperr.Invalid("password is required")
	case strings.TrimSpace(in.Email) == "":
		return 0, apperr.Invalid("email is required")
	case in.RoleID == nil:
		return 0, apperr.Invalid("roleId is required")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	return s.Users.Insert(ctx, users.NewUser{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(in.Email),
		RoleID:       *in.RoleID,
	})
}

func (s *Service) Me(ctx context.Context, userID int64) (users.User, error) {
	u, found, err := s.Users.Get(ctx, userID)
	if err != nil {
		return u, err
	}
	if !found {
		return u, ErrUserNotFound
	}
	return u, nil
}

// Authenticate verifies a raw bearer token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	c, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if s.Revoker != nil {
		revoked, err := s.Revoker.Revoked(ctx, c.ID)
		if err != nil {
			logging.Error(logging.Fields{Service: s.ServiceName, RequestID: logging.RequestID(ctx), Step: "revocation_check"}, err)
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return c, nil
}

func (s *Service) Logout(ctx context.Context, c *Claims) error {
	if s.Revoker == nil {
		return nil
	}
	return s.Revoker.Revoke(ctx, c)
}
