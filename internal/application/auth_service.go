package application

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
	"github.com/vcostin/pic-gallery-sub004/internal/email"
)

type AuthService struct {
	users  domain.UserRepository
	email  *email.Client
	secret string
	expiry time.Duration
}

func NewAuthService(users domain.UserRepository, emailClient *email.Client, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		email:  emailClient,
		secret: secret,
		expiry: expiry,
	}
}

func (s *AuthService) Register(name, emailAddr, password string) (*domain.User, error) {
	if existing, _ := s.users.GetByEmail(emailAddr); existing != nil {
		return nil, fmt.Errorf("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	// Welcome mail is best effort; registration already succeeded.
	if s.email != nil {
		if err := s.email.SendWelcome(user.Name, user.Email); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
		}
	}

	return user, nil
}

func (s *AuthService) Login(emailAddr, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(emailAddr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, fmt.Errorf("error signing token: %w", err)
	}

	return signed, user, nil
}

func (s *AuthService) GetUser(id string) (*domain.User, error) {
	return s.users.GetByID(id)
}

// ParseToken verifies a bearer token and returns the user id it carries.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
