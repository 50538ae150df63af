package swaps

import (
	"testing"

	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoles(t *testing.T) {
	cases := []struct {
		name     string
		postType models.PostType
		want     Roles
	}{
		{"offer: owner teaches requester", models.PostTypeOffer, Roles{Provider: "owner", Receiver: "requester"}},
		{"request: requester teaches owner", models.PostTypeRequest, Roles{Provider: "requester", Receiver: "owner"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveRoles(tc.postType, "owner", "requester")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRolesUnknownType(t *testing.T) {
	_, err := ResolveRoles("Trade", "owner", "requester")
	assert.Error(t, err)
}
