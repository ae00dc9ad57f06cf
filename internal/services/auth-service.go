package services

import (
	"strings"

	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (string, *domain.User, error)
	GetProfile(userID string) (*domain.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	auth     helper.Auth
}

func NewAuthService(userRepo repository.UserRepository, auth helper.Auth) AuthService {
	return &authService{userRepo: userRepo, auth: auth}
}

func (s *authService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	displayName := strings.TrimSpace(input.DisplayName)

	if email == "" || strings.TrimSpace(input.Password) == "" || displayName == "" {
		return nil, apperr.BadRequest("Please provide valid inputs")
	}
	if len(input.Password) < 6 {
		return nil, apperr.BadRequest("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindUserByEmail(email)
	if err == nil && existing != nil {
		return nil, apperr.BadRequest("email already exists")
	}
	if err != nil && !helper.IsNotFound(err) {
		return nil, apperr.Internal("failed to check existing account", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
		Status:       "active",
	}
	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}
	return created, nil
}

func (s *authService) Login(input dto.UserLogin) (string, *domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil {
		return "", nil, apperr.Unauthenticated("Invalid email or password")
	}
	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return "", nil, apperr.Unauthenticated("Invalid email or password")
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, apperr.Internal("could not generate token", err)
	}
	return token, user, nil
}

func (s *authService) GetProfile(userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to load profile", err)
	}
	return user, nil
}
