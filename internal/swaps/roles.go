package swaps

import (
	"fmt"

	"github.com/GiorgiUbiria/skill_swap/internal/models"
)

// Roles names who teaches (Provider) and who learns (Receiver) in a swap.
type Roles struct {
	Provider string
	Receiver string
}

// ResolveRoles derives the transfer direction from the post type. On an
// Offer the owner teaches the requester; on a Request the requester
// teaches the owner.
func ResolveRoles(postType models.PostType, ownerID, requesterID string) (Roles, error) {
	switch postType {
	case models.PostTypeOffer:
		return Roles{Provider: ownerID, Receiver: requesterID}, nil
	case models.PostTypeRequest:
		return Roles{Provider: requesterID, Receiver: ownerID}, nil
	default:
		return Roles{}, fmt.Errorf("unknown post type %q", postType)
	}
}
