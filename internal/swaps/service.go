// Package swaps implements the swap lifecycle (Pending, Accepted, Rejected,
// Completed) and the HelpPoints transfer that completion triggers.
package swaps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/metrics"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/GiorgiUbiria/skill_swap/internal/notify"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Notifier is told about accepted swaps. Implementations must not block.
type Notifier interface {
	MeetingScheduled(n notify.MeetingNotice)
}

type Service struct {
	db           *gorm.DB
	notifier     Notifier
	defaultLimit int
}

func NewService(db *gorm.DB, notifier Notifier, defaultLimit int) *Service {
	if defaultLimit <= 0 || defaultLimit > MaxPageLimit {
		defaultLimit = DefaultPageLimit
	}
	return &Service{db: db, notifier: notifier, defaultLimit: defaultLimit}
}

type StatusInput struct {
	Status      models.SwapStatus `json:"status"`
	MeetingDate string            `json:"meetingDate"`
	MeetingTime string            `json:"meetingTime"`
	MeetingLink string            `json:"meetingLink"`
}

// Completion reports the balances right after the transfer.
type Completion struct {
	Swap           *models.Swap `json:"swap"`
	ProviderPoints int          `json:"providerPoints"`
	ReceiverPoints int          `json:"receiverPoints"`
}

type Page struct {
	Swaps      []models.Swap `json:"swaps"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
}

func publicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar_url")
}

func postSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "type")
}

func (s *Service) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Post", postSummary).
		Preload("Requester", publicUser).
		Preload("Owner", publicUser)
}

func (s *Service) find(ctx context.Context, id string) (*models.Swap, error) {
	var swap models.Swap
	if err := s.withDetails(ctx).First(&swap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Swap record not found!")
		}
		return nil, fmt.Errorf("get swap: %w", err)
	}
	return &swap, nil
}

// SendRequest opens a Pending swap from requesterID against postID.
func (s *Service) SendRequest(ctx context.Context, postID, requesterID string) (*models.Swap, error) {
	if postID == "" {
		return nil, apperr.Validation("postId is required")
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found!")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	if post.OwnerID == requesterID {
		return nil, apperr.InvalidOperation("You cannot request your own post!")
	}

	var requester models.User
	if err := s.db.WithContext(ctx).Select("id", "help_points").First(&requester, "id = ?", requesterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, fmt.Errorf("get requester: %w", err)
	}

	// Answering a Request means the requester teaches, so no balance is needed.
	if requester.HelpPoints <= 0 && post.Type == models.PostTypeOffer {
		return nil, apperr.Forbidden("Insufficient HelpPoints! Offer a skill to earn more.")
	}

	swap := models.Swap{
		PostID:      &post.ID,
		PostType:    post.Type,
		RequesterID: requesterID,
		OwnerID:     post.OwnerID,
		Status:      models.SwapPending,
	}
	if err := s.db.WithContext(ctx).Create(&swap).Error; err != nil {
		return nil, fmt.Errorf("create swap: %w", err)
	}

	metrics.SwapTransitions.WithLabelValues(string(models.SwapPending)).Inc()
	logger.Log.Info("swap requested",
		zap.String("swap_id", swap.ID),
		zap.String("post_id", post.ID),
		zap.String("requester_id", requesterID))
	return &swap, nil
}

func validateMeeting(in StatusInput) error {
	if in.MeetingDate == "" || in.MeetingTime == "" || in.MeetingLink == "" {
		return apperr.Validation("Please provide all meeting details!")
	}
	link := strings.ToLower(in.MeetingLink)
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return apperr.Validation("meetingLink must be an http or https URL")
	}
	return nil
}

// UpdateStatus lets the post owner accept or reject a Pending swap.
func (s *Service) UpdateStatus(ctx context.Context, swapID, actorID string, in StatusInput) (*models.Swap, error) {
	if in.Status != models.SwapAccepted && in.Status != models.SwapRejected {
		return nil, apperr.Validation("status must be Accepted or Rejected")
	}

	swap, err := s.find(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != actorID {
		return nil, apperr.Forbidden("Not authorized to update this status")
	}
	if swap.Status != models.SwapPending {
		return nil, apperr.InvalidOperation(fmt.Sprintf("Swap is already %s", strings.ToLower(string(swap.Status))))
	}

	updates := map[string]any{"status": in.Status}
	if in.Status == models.SwapAccepted {
		if err := validateMeeting(in); err != nil {
			return nil, err
		}
		updates["meeting_date"] = in.MeetingDate
		updates["meeting_time"] = in.MeetingTime
		updates["meeting_link"] = in.MeetingLink
	}

	res := s.db.WithContext(ctx).Model(&models.Swap{}).
		Where("id = ? AND status = ?", swapID, models.SwapPending).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update swap status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.InvalidOperation("Swap is no longer pending")
	}

	metrics.SwapTransitions.WithLabelValues(string(in.Status)).Inc()
	logger.Log.Info("swap status updated",
		zap.String("swap_id", swapID),
		zap.String("status", string(in.Status)))

	updated, err := s.find(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if in.Status == models.SwapAccepted {
		s.notifyAccepted(ctx, updated)
	}
	return updated, nil
}

// notifyAccepted hands the meeting notice off; failures never affect the
// status change that already committed.
func (s *Service) notifyAccepted(ctx context.Context, swap *models.Swap) {
	if s.notifier == nil {
		return
	}

	var users []models.User
	err := s.db.WithContext(ctx).Select("id", "name", "email").
		Where("id IN ?", []string{swap.RequesterID, swap.OwnerID}).
		Find(&users).Error
	if err != nil {
		logger.Log.Error("meeting notification skipped", zap.String("swap_id", swap.ID), zap.Error(err))
		metrics.Notifications.WithLabelValues("failed").Inc()
		return
	}

	n := notify.MeetingNotice{
		SwapID:    swap.ID,
		PostTitle: "your skill swap",
		Date:      swap.MeetingDate,
		Time:      swap.MeetingTime,
		Link:      swap.MeetingLink,
	}
	if swap.Post != nil {
		n.PostTitle = swap.Post.Title
	}
	for _, u := range users {
		r := notify.Recipient{Name: u.Name, Email: u.Email}
		switch u.ID {
		case swap.RequesterID:
			n.Requester = r
		case swap.OwnerID:
			n.Owner = r
		}
	}
	s.notifier.MeetingScheduled(n)
}

// Complete finalizes an Accepted swap and moves one HelpPoint from the
// receiver to the provider. Only the receiver may complete. The status
// flip, both balance changes and the ledger rows commit together, and the
// flip is conditional on the swap still being Accepted, so a swap is paid
// out at most once.
func (s *Service) Complete(ctx context.Context, swapID, actorID string) (*Completion, error) {
	swap, err := s.find(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status.Terminal() {
		return nil, apperr.InvalidOperation(fmt.Sprintf("Swap is already %s", strings.ToLower(string(swap.Status))))
	}
	if swap.Status != models.SwapAccepted {
		return nil, apperr.InvalidOperation("Swap must be accepted before completion")
	}

	roles, err := ResolveRoles(swap.PostType, swap.OwnerID, swap.RequesterID)
	if err != nil {
		return nil, err
	}
	if actorID != roles.Receiver {
		return nil, apperr.Forbidden("Only the receiving party can complete this swap")
	}

	var out Completion
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swapID, models.SwapAccepted).
			Update("status", models.SwapCompleted)
		if res.Error != nil {
			return fmt.Errorf("flip status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidOperation("Swap must be accepted before completion")
		}

		if err := adjustHelpPoints(tx, roles.Provider, 1); err != nil {
			return err
		}
		if err := adjustHelpPoints(tx, roles.Receiver, -1); err != nil {
			return err
		}

		entries := []models.LedgerEntry{
			{SwapID: swapID, UserID: roles.Provider, Amount: 1},
			{SwapID: swapID, UserID: roles.Receiver, Amount: -1},
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("write ledger: %w", err)
		}

		var parties []models.User
		if err := tx.Select("id", "help_points").Where("id IN ?", []string{roles.Provider, roles.Receiver}).Find(&parties).Error; err != nil {
			return fmt.Errorf("read balances: %w", err)
		}
		for _, p := range parties {
			switch p.ID {
			case roles.Provider:
				out.ProviderPoints = p.HelpPoints
			case roles.Receiver:
				out.ReceiverPoints = p.HelpPoints
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SwapTransitions.WithLabelValues(string(models.SwapCompleted)).Inc()
	metrics.HelpPointsTransferred.Inc()
	logger.Log.Info("swap completed",
		zap.String("swap_id", swapID),
		zap.String("provider_id", roles.Provider),
		zap.String("receiver_id", roles.Receiver))

	out.Swap, err = s.find(ctx, swapID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func adjustHelpPoints(tx *gorm.DB, userID string, delta int) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("help_points", gorm.Expr("help_points + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("adjust help points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found!")
	}
	return nil
}

// ListForUser pages through swaps where userID is requester or owner,
// newest first.
func (s *Service) ListForUser(ctx context.Context, userID string, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Swap{}).
		Where("requester_id = ? OR owner_id = ?", userID, userID).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count swaps: %w", err)
	}

	swaps := []models.Swap{}
	if err := s.withDetails(ctx).
		Where("requester_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&swaps).Error; err != nil {
		return nil, fmt.Errorf("list swaps: %w", err)
	}

	return &Page{
		Swaps:      swaps,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Get returns a swap to either of its parties.
func (s *Service) Get(ctx context.Context, swapID, actorID string) (*models.Swap, error) {
	swap, err := s.find(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != actorID && swap.OwnerID != actorID {
		return nil, apperr.Forbidden("Not authorized to view this swap")
	}
	return swap, nil
}

// Ledger returns the transfer rows written for a swap.
func (s *Service) Ledger(ctx context.Context, swapID string) ([]models.LedgerEntry, error) {
	entries := []models.LedgerEntry{}
	if err := s.db.WithContext(ctx).Where("swap_id = ?", swapID).Order("amount DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}
