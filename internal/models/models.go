package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const StartingHelpPoints = 5

type PostType string

const (
	PostTypeOffer   PostType = "Offer"
	PostTypeRequest PostType = "Request"
)

func (t PostType) Valid() bool {
	return t == PostTypeOffer || t == PostTypeRequest
}

type SwapStatus string

const (
	SwapPending   SwapStatus = "Pending"
	SwapAccepted  SwapStatus = "Accepted"
	SwapRejected  SwapStatus = "Rejected"
	SwapCompleted SwapStatus = "Completed"
)

// Terminal reports whether no further transition is possible.
func (s SwapStatus) Terminal() bool {
	return s == SwapCompleted || s == SwapRejected
}

// Base replaces gorm.Model: IDs are opaque UUID strings and rows are hard-deleted.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	Base
	Name       string `gorm:"size:50;not null" json:"name"`
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email,omitempty"`
	Password   string `gorm:"size:255;not null" json:"-"`
	AvatarURL  string `gorm:"size:512" json:"avatar"`
	HelpPoints int    `gorm:"not null" json:"helpPoints"`
}

type Post struct {
	Base
	Title       string   `gorm:"size:120;not null" json:"title"`
	Description string   `gorm:"not null" json:"description"`
	Category    string   `gorm:"size:60;index;not null" json:"category"`
	Type        PostType `gorm:"size:10;index;not null" json:"type"`
	OwnerID     string   `gorm:"size:36;index;not null" json:"ownerId"`
	Owner       *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// Swap keeps its own copy of the owner and the post type so that the
// record stays meaningful after the post is deleted.
type Swap struct {
	Base
	PostID      *string    `gorm:"size:36;index" json:"postId"`
	Post        *Post      `gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL" json:"post"`
	PostType    PostType   `gorm:"size:10;not null" json:"postType"`
	RequesterID string     `gorm:"size:36;index;not null" json:"requesterId"`
	Requester   *User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	OwnerID     string     `gorm:"size:36;index;not null" json:"ownerId"`
	Owner       *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Status      SwapStatus `gorm:"size:10;index;not null;default:Pending" json:"status"`
	MeetingDate string     `gorm:"size:20" json:"meetingDate,omitempty"`
	MeetingTime string     `gorm:"size:20" json:"meetingTime,omitempty"`
	MeetingLink string     `gorm:"size:512" json:"meetingLink,omitempty"`
}

// LedgerEntry records one side of a HelpPoints transfer. Entries for a
// swap always sum to zero.
type LedgerEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SwapID    string    `gorm:"size:36;index;not null" json:"swapId"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for migration.
func All() []any {
	return []any{&User{}, &Post{}, &Swap{}, &LedgerEntry{}}
}
