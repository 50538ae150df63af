package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/auth"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/GiorgiUbiria/skill_swap/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*Service, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	svc := NewService(storetest.NewDB(t), tokens)
	svc.cost = bcrypt.MinCost
	return svc, tokens
}

func TestRegisterStartsWithFiveHelpPoints(t *testing.T) {
	svc, tokens := newService(t)

	sess, err := svc.Register(context.Background(), RegisterInput{Name: "Ann", Email: "Ann@Example.com ", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, models.StartingHelpPoints, sess.User.HelpPoints)
	assert.Equal(t, "ann@example.com", sess.User.Email)
	assert.NotEqual(t, "secret1", sess.User.Password)

	sub, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, sub)
}

func TestRegisterRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann 2", Email: "ANN@example.com", Password: "secret2"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Name: " ", Email: "a@b.co", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)

	_, err = svc.Login(ctx, "ann@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ann, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "Bea", Email: "bea@example.com", Password: "secret1"})
	require.NoError(t, err)

	u, err := svc.Update(ctx, ann.User.ID, UpdateInput{Name: "Annie", AvatarURL: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Annie", u.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", u.AvatarURL)
	assert.Equal(t, models.StartingHelpPoints, u.HelpPoints)

	_, err = svc.Update(ctx, ann.User.ID, UpdateInput{Email: "Bea@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	u, err = svc.Update(ctx, ann.User.ID, UpdateInput{Email: "annie@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "annie@example.com", u.Email)
}
