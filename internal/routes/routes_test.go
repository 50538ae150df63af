package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/GiorgiUbiria/skill_swap/internal/accounts"
	"github.com/GiorgiUbiria/skill_swap/internal/auth"
	"github.com/GiorgiUbiria/skill_swap/internal/handlers"
	"github.com/GiorgiUbiria/skill_swap/internal/listings"
	appmw "github.com/GiorgiUbiria/skill_swap/internal/middleware"
	"github.com/GiorgiUbiria/skill_swap/internal/notify"
	"github.com/GiorgiUbiria/skill_swap/internal/storetest"
	"github.com/GiorgiUbiria/skill_swap/internal/swaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notices struct {
	mu   sync.Mutex
	sent []notify.MeetingNotice
}

func (n *notices) MeetingScheduled(m notify.MeetingNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, m)
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T) (*client, *notices) {
	db := storetest.NewDB(t)
	tokens := auth.NewTokens("test-secret", time.Hour)
	n := &notices{}
	h := &handlers.Handler{
		Accounts: accounts.NewService(db, tokens),
		Listings: listings.NewService(db),
		Swaps:    swaps.NewService(db, n, 0),
	}
	srv := httptest.NewServer(NewRoutes(h, tokens, appmw.NewRateLimiter(1000, 1000)))
	t.Cleanup(srv.Close)
	return &client{t: t, server: srv}, n
}

func (c *client) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (c *client) register(name, email string) (token, id string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(c.t, http.StatusCreated, code, body)
	user := body["user"].(map[string]any)
	assert.EqualValues(c.t, 5, user["helpPoints"])
	return body["token"].(string), user["id"].(string)
}

func (c *client) helpPoints(token string) float64 {
	c.t.Helper()
	code, body := c.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(c.t, http.StatusOK, code, body)
	return body["user"].(map[string]any)["helpPoints"].(float64)
}

func TestGuitarLessonsEndToEnd(t *testing.T) {
	c, sent := newClient(t)
	annToken, _ := c.register("Ann", "ann@example.com")
	beaToken, _ := c.register("Bea", "bea@example.com")

	code, body := c.do(http.MethodPost, "/api/posts", annToken, map[string]string{
		"title": "Guitar Lessons", "description": "Beginner chords", "category": "Music", "type": "Offer",
	})
	require.Equal(t, http.StatusCreated, code, body)
	postID := body["post"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodGet, "/api/posts", annToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])

	code, body = c.do(http.MethodGet, "/api/posts?type=Offer", beaToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, body = c.do(http.MethodPost, "/api/swaps/request", beaToken, map[string]string{"postId": postID})
	require.Equal(t, http.StatusCreated, code, body)
	swap := body["swap"].(map[string]any)
	assert.Equal(t, "Pending", swap["status"])
	swapID := swap["id"].(string)

	code, _ = c.do(http.MethodPut, "/api/swaps/"+swapID+"/status", beaToken, map[string]string{"status": "Accepted"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPut, "/api/swaps/"+swapID+"/status", beaToken, map[string]string{
		"status": "Rejected",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = c.do(http.MethodPut, "/api/swaps/"+swapID+"/status", annToken, map[string]string{
		"status": "Accepted", "meetingDate": "2026-10-20", "meetingTime": "18:00", "meetingLink": "httpfoo",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "meetingLink must be a valid URL", body["message"])

	code, body = c.do(http.MethodPut, "/api/swaps/"+swapID+"/status", annToken, map[string]string{
		"status": "Accepted", "meetingDate": "2026-10-20", "meetingTime": "18:00", "meetingLink": "https://meet.example.com/abc",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Swap request accepted successfully", body["message"])
	assert.Len(t, sent.sent, 1)

	code, _ = c.do(http.MethodPost, "/api/swaps/"+swapID+"/complete", annToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = c.do(http.MethodPost, "/api/swaps/"+swapID+"/complete", beaToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 6, body["providerPoints"])
	assert.EqualValues(t, 4, body["receiverPoints"])

	code, _ = c.do(http.MethodPost, "/api/swaps/"+swapID+"/complete", beaToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.EqualValues(t, 6, c.helpPoints(annToken))
	assert.EqualValues(t, 4, c.helpPoints(beaToken))

	code, body = c.do(http.MethodGet, "/api/swaps/my-swaps?page=1&limit=5", annToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["totalPages"])
	listed := body["swaps"].([]any)
	require.Len(t, listed, 1)
	assert.Equal(t, "Completed", listed[0].(map[string]any)["status"])

	code, body = c.do(http.MethodGet, "/api/swaps/"+swapID+"/ledger", beaToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["entries"], 2)
}

func TestAuthErrors(t *testing.T) {
	c, _ := newClient(t)
	c.register("Ann", "ann@example.com")

	code, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "ANN@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", body["message"])

	code, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])

	code, _ = c.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/swaps/request", "", map[string]string{"postId": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPostLifecycle(t *testing.T) {
	c, _ := newClient(t)
	annToken, _ := c.register("Ann", "ann@example.com")
	beaToken, _ := c.register("Bea", "bea@example.com")

	code, body := c.do(http.MethodPost, "/api/posts", annToken, map[string]string{
		"title": "Learn French", "description": "Conversation practice", "category": "Languages", "type": "Swap",
	})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = c.do(http.MethodPost, "/api/posts", annToken, map[string]string{
		"title": "Learn French", "description": "Conversation practice", "category": "Languages", "type": "Request",
	})
	require.Equal(t, http.StatusCreated, code, body)
	postID := body["post"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann", body["post"].(map[string]any)["owner"].(map[string]any)["name"])

	code, body = c.do(http.MethodGet, "/api/posts/my-posts", annToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["posts"], 1)

	code, _ = c.do(http.MethodPost, "/api/swaps/request", annToken, map[string]string{"postId": postID})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodDelete, "/api/posts/"+postID, beaToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = c.do(http.MethodDelete, "/api/posts/"+postID, annToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t)
	code, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
