// Package accounts handles registration, login and profile updates.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	db     *gorm.DB
	tokens TokenIssuer
	cost   int
}

func NewService(db *gorm.DB, tokens TokenIssuer) *Service {
	return &Service{db: db, tokens: tokens, cost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Name      string `json:"name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	AvatarURL string `json:"avatar" validate:"omitempty,url"`
}

type UpdateInput struct {
	Name      string `json:"name" validate:"omitempty,max=50"`
	Email     string `json:"email" validate:"omitempty,email"`
	AvatarURL string `json:"avatar" validate:"omitempty,url"`
}

// Session is what register and login hand back to the client.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	taken, err := s.emailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		AvatarURL:  in.AvatarURL,
		HelpPoints: models.StartingHelpPoints,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.KindConflict, "User already exists", err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Log.Info("user registered", zap.String("user_id", user.ID))

	return s.session(&user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Validation("Email or password invalid!")
	}
	return s.session(&user)
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Update changes the profile fields that are set in in.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(in.Name); name != "" {
		updates["name"] = name
	}
	if email := normalizeEmail(in.Email); email != "" && email != user.Email {
		taken, err := s.emailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Email already in use")
		}
		updates["email"] = email
	}
	if in.AvatarURL != "" {
		updates["avatar_url"] = in.AvatarURL
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.KindConflict, "Email already in use", err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}
