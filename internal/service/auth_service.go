package service

import (
	"errors"
	"time"

	"github.com/asrayg/betterforms/config"
	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/asrayg/betterforms/internal/dto"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload for authenticated form owners.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(req dto.LoginDTO) (*dto.AuthResponseDTO, error)
	// ParseToken validates a bearer token and returns its claims.
	ParseToken(token string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; issued tokens will not survive restarts")
	}
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.Auth.JWTSecret),
		tokenTTL: cfg.Auth.TokenTTL,
	}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperror.New(apperror.KindInvalid, "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Register: failed to check existing user")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}

	user := model.User{Email: req.Email, Name: req.Name, PasswordHash: string(hash)}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create user")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to create account", err)
	}

	log.Info().Uint("userID", user.ID).Msg("User registered")
	return s.issueToken(&user)
}

func (s *authService) Login(req dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindUnauthenticated, "invalid email or password")
		}
		log.Error().Err(err).Msg("Login: failed to fetch user")
		return nil, apperror.Wrap(apperror.KindInternal, "failed to fetch account", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperror.New(apperror.KindUnauthenticated, "invalid email or password")
	}
	return s.issueToken(user)
}

func (s *authService) issueToken(user *model.User) (*dto.AuthResponseDTO, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "betterforms",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to sign token", err)
	}
	return &dto.AuthResponseDTO{
		Token: signed,
		User:  dto.UserDTO{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

func (s *authService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(apperror.KindUnauthenticated, "invalid or expired token")
	}
	return claims, nil
}
