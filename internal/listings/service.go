// Package listings manages skill posts: Offers and Requests.
package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title       string          `json:"title" validate:"required,max=120"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required,max=60"`
	Type        models.PostType `json:"type" validate:"required,oneof=Offer Request"`
}

// Filter narrows the marketplace listing. Empty fields match everything.
type Filter struct {
	Category       string
	Type           models.PostType
	ExcludeOwnerID string
}

// publicOwner limits the populated owner to what other users may see.
func publicOwner(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar_url", "help_points")
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*models.Post, error) {
	post := models.Post{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Type:        in.Type,
		OwnerID:     ownerID,
	}
	if post.Title == "" || post.Description == "" || post.Category == "" {
		return nil, apperr.Validation("title, description and category are required")
	}
	if !post.Type.Valid() {
		return nil, apperr.Validation("type must be Offer or Request")
	}

	var owners int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", ownerID).Count(&owners).Error; err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if owners == 0 {
		return nil, apperr.NotFound("User not found!")
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	logger.Log.Info("post created", zap.String("post_id", post.ID), zap.String("owner_id", ownerID))
	return &post, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Preload("Owner", publicOwner)
	if f.ExcludeOwnerID != "" {
		q = q.Where("owner_id <> ?", f.ExcludeOwnerID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	posts := []models.Post{}
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list own posts: %w", err)
	}
	return posts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Owner", publicOwner).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found!")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// Delete removes a post owned by actorID.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post not found!")
		}
		return fmt.Errorf("get post: %w", err)
	}
	if post.OwnerID != actorID {
		return apperr.Forbidden("You are not authorized to delete this post")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Swaps keep their denormalized owner and post type.
		if err := tx.Model(&models.Swap{}).Where("post_id = ?", id).Update("post_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	logger.Log.Info("post deleted", zap.String("post_id", id))
	return nil
}
