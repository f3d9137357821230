package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dskendzo/eventplanner/config"
	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/pkg/auth"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user organizer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userService struct {
	userRepo repository.UserRepository
	jwtCfg   *config.JWTConfig
}

func NewUserService(userRepo repository.UserRepository, jwtCfg *config.JWTConfig) UserService {
	return &userService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.RoleUser
	}

	user := &entity.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(s.jwtCfg, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logrus.Infof("User registered: id=%d email=%s", user.ID, user.Email)
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtCfg, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
