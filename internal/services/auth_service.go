package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"looped/internal/models"
	"looped/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	userRepo   repositories.UserRepository
	audit      *AuditService
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, audit *AuditService, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		audit:      audit,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new buyer account, hashes the password, and saves
// it. Duplicate emails are rejected before anything is written, so a failed
// registration leaves no user row and no audit entry behind.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleBuyer
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	// Policy: log-and-continue. Registration succeeded; a lost audit entry
	// must not undo it.
	if err := s.audit.Record(models.AuditActionCreate, models.AuditEntityUser, user.ID, user.ID); err != nil {
		log.Printf("Failed to record audit entry for user %s registration: %v", user.ID, err)
	}
	return nil
}

// LoginUser authenticates a user by email and returns a signed JWT carrying
// the user ID and role.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email is registered.
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// SessionFromHeader resolves the session from a raw Authorization header.
// Anything short of a valid "Bearer <token>" credential yields Anonymous.
// Both the route gate and the admin handlers call this independently, each
// re-deriving identity and role from the same credential.
func (s *AuthService) SessionFromHeader(authHeader string) Session {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Anonymous
	}

	claims, err := s.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return Anonymous
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return Anonymous
	}
	return Session{UserID: userID, Role: models.Role(role)}
}
