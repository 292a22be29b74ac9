package domain

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt-хэш, никогда не отправляем на фронт
	Role     string `json:"role"`
}

// PublicUser — ровно те поля, которые видит клиент консоли.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

const DefaultRole = "viewer"

// Credentials — тело запросов /api/auth/register и /api/auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return NewValidationError("Invalid input")
	}
	return nil
}

// ServiceClaims — claims сервисного токена RS256, которым CLI-шлюз
// аутентифицируется вместо браузерной сессии.
type ServiceClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
