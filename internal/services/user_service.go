package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
	"mgaBack/utils"
)

const (
	tokenTTL        = 120 * time.Minute
	refreshTokenTTL = 24 * 30 * 2 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	SigningKey   string
}

// SignIn authenticates by email and password. Pending accounts are rejected
// until an admin approves them.
func (s *UserService) SignIn(ctx context.Context, email, password string) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if user.Status == models.StatusPending {
		return models.AuthResponse{}, models.ErrUserPending
	}

	tokens, err := s.createSession(ctx, user)
	if err != nil {
		log.Printf("create session for user %d: %v", user.ID, err)
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Message:      "Đăng nhập thành công!",
	}, nil
}

func (s *UserService) createSession(ctx context.Context, user models.User) (models.Tokens, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		UserID: user.ID,
		Role:   user.Role,
	})

	accessToken, err := token.SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken := uuid.New().String()
	if s.TokenManager != nil {
		refreshToken, err = s.TokenManager.NewRefreshToken()
		if err != nil {
			return models.Tokens{}, err
		}
	}

	s.UserRepo.SaveSession(ctx, models.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SignUp registers a new collaborator. New accounts start Pending and wait
// for an admin to approve them; an invited user lands in the inviter's group.
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	group := req.Group
	if group == "" {
		group = models.NoGroup
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCollaborator,
		Status:       models.StatusPending,
		Group:        group,
	}
	return s.UserRepo.Create(ctx, user)
}

// ApproveUser activates a pending account.
func (s *UserService) ApproveUser(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.Approve(ctx, id)
}

// AddUserByAdmin creates an already-active account with an explicit role.
func (s *UserService) AddUserByAdmin(ctx context.Context, req models.SignUpRequest, role models.UserRole) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	group := req.Group
	if group == "" {
		if role == models.RoleAdmin {
			group = "Phòng Điều Hành"
		} else {
			group = models.NoGroup
		}
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.StatusActive,
		Group:        group,
	}
	return s.UserRepo.Create(ctx, user)
}

// AddCollaboratorToGroup lets a leader add an active collaborator straight
// into their own group.
func (s *UserService) AddCollaboratorToGroup(ctx context.Context, leaderGroup string, req models.SignUpRequest) (models.User, error) {
	if leaderGroup == "" {
		return models.User{}, errors.New("leader has no group")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCollaborator,
		Status:       models.StatusActive,
		Group:        leaderGroup,
	}
	return s.UserRepo.Create(ctx, user)
}

func (s *UserService) GetAllUsers(ctx context.Context) []models.User {
	return s.UserRepo.GetAll(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetByID(ctx, id)
}

func (s *UserService) GetUsersByGroup(ctx context.Context, group string) []models.User {
	return s.UserRepo.GetByGroup(ctx, group)
}

func (s *UserService) LogOut(ctx context.Context, userID int) {
	s.UserRepo.DeleteSessionsForUser(ctx, userID)
}
