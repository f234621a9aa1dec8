// internal/services/auth_service.go
package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"assistant-backend/internal/models"
	"assistant-backend/internal/quota"
	"assistant-backend/internal/repository"
	apperrors "assistant-backend/pkg/errors"
)

// SessionClaims is the JWT payload for an authenticated session.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	VerifyToken(tokenString string) (*SessionClaims, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	clock       quota.Clock
	jwtSecret   []byte
	tokenTTL    time.Duration
	bcryptCost  int
}

func NewAuthService(accountRepo repository.AccountRepository, clock quota.Clock, jwtSecret string, tokenTTL time.Duration, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		accountRepo: accountRepo,
		clock:       clock,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		bcryptCost:  bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}

	// Check if the account already exists
	_, err := s.accountRepo.GetByUserID(ctx, req.UserID)
	if err == nil {
		return nil, apperrors.NewAccountExistsError()
	}
	if !apperrors.IsErrorType(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	acct := models.NewAccount(req.UserID, req.Email, req.Name, string(hash), s.clock.Now())
	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return nil, err
	}

	zap.L().Info("Account registered",
		zap.String("userId", acct.UserID),
		zap.String("role", acct.Role))

	return &models.RegisterResponse{
		Message: "Account registered successfully",
		Account: *acct,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}

	acct, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrAccountNotFound) {
			// Same message as a bad password: don't reveal which one failed.
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if !acct.IsActive {
		return nil, apperrors.NewAccountDisabledError()
	}

	token, err := s.issueToken(acct)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		UserID:  acct.UserID,
		Role:    acct.Role,
	}, nil
}

func (s *authService) issueToken(acct *models.Account) (string, error) {
	now := s.clock.Now()
	claims := &SessionClaims{
		UserID: acct.UserID,
		Email:  acct.Email,
		Role:   acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}
	return claims, nil
}
