package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/logging"
	"github.com/campushub/campushub/internal/server/auth"
	"github.com/campushub/campushub/internal/server/config"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/memory"
	"github.com/campushub/campushub/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router  *gin.Engine
	primary *memory.Manager
	fb      *memory.Manager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg := &config.Config{}
	cfg.LoadDefaults()

	primary := memory.NewManager()
	fb := memory.NewManager()
	store := &services.Store{
		Primary:  primary,
		Fallback: fb,
		Facade:   facade.New(cfg.StoreTimeout, logger),
		Logger:   logger,
	}

	api := &API{
		Users:         services.NewUserService(store, cfg),
		Posts:         services.NewPostService(store),
		Comments:      services.NewCommentService(store),
		Follows:       services.NewFollowService(store),
		Messages:      services.NewMessageService(store),
		Notifications: services.NewNotificationService(store),
		Listings:      services.NewListingService(store),
		Verifier:      auth.NewJWTVerifier([]byte(cfg.SecretKey)),
		Logger:        logger,
	}
	return &testAPI{router: api.Router(), primary: primary, fb: fb}
}

func (ta *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

type testEnvelope struct {
	Data     map[string]any `json:"data"`
	Error    string         `json:"error"`
	Degraded bool           `json:"degraded"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// signupAndLogin provisions an account over the API and returns its access
// token and user id.
func (ta *testAPI) signupAndLogin(t *testing.T, email, name string) (token, userID string) {
	t.Helper()
	w := ta.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": email, "password": "password123", "name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	user := env.Data["user"].(map[string]any)
	return env.Data["accessToken"].(string), user["id"].(string)
}

func fieldsOf(t *testing.T, env testEnvelope) []string {
	t.Helper()
	raw, ok := env.Data["fields"].([]any)
	require.True(t, ok, "validation response must carry a field list")
	var names []string
	for _, f := range raw {
		names = append(names, f.(map[string]any)["field"].(string))
	}
	return names
}

func TestSignup_Validation(t *testing.T) {
	ta := newTestAPI(t)

	w := ta.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": "alice@campus.edu", "password": "short", "name": "Alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fieldsOf(t, decode(t, w)), "password")

	w = ta.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	names := fieldsOf(t, decode(t, w))
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "password")
	assert.Contains(t, names, "name")
}

func TestSignup_Duplicate(t *testing.T) {
	ta := newTestAPI(t)
	ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email": "alice@campus.edu", "password": "password123", "name": "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	ta := newTestAPI(t)
	ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@campus.edu", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_Rotation(t *testing.T) {
	ta := newTestAPI(t)
	ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@campus.edu", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := decode(t, w).Data["refreshToken"].(string)

	w = ta.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": refresh})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ta.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "spent token must be rejected")
}

func TestFeed_RequiresAuth(t *testing.T) {
	ta := newTestAPI(t)
	w := ta.do(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeed_LimitClamp(t *testing.T) {
	ta := newTestAPI(t)
	token, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodGet, "/api/posts?page=0&limit=9999", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	pagination := env.Data["pagination"].(map[string]any)
	assert.Equal(t, float64(50), pagination["size"])
	assert.Equal(t, float64(1), pagination["current"])
}

func TestPost_Lifecycle(t *testing.T) {
	ta := newTestAPI(t)
	token, userID := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/posts", token, gin.H{"content": "hello campus"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decode(t, w).Data["id"].(string)

	w = ta.do(t, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, "single post is public")
	env := decode(t, w)
	assert.Equal(t, "hello campus", env.Data["content"])
	assert.Equal(t, userID, env.Data["author"].(map[string]any)["id"])
	assert.Equal(t, false, env.Data["isLiked"])

	w = ta.do(t, http.MethodDelete, "/api/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ta.do(t, http.MethodDelete, "/api/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPost_OwnershipDenied(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")
	bobToken, _ := ta.signupAndLogin(t, "bob@campus.edu", "Bob")

	w := ta.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{"content": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decode(t, w).Data["id"].(string)

	w = ta.do(t, http.MethodPut, "/api/posts/"+postID, bobToken, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLike_DuplicateConflict(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")
	bobToken, _ := ta.signupAndLogin(t, "bob@campus.edu", "Bob")

	w := ta.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{"content": "like me"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decode(t, w).Data["id"].(string)

	w = ta.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%s/like", postID), bobToken, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = ta.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%s/like", postID), bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ta.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%s/like", postID), bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ta.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%s/like", postID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOutage_DegradedReadsAnd503Writes(t *testing.T) {
	ta := newTestAPI(t)
	token, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	demo, err := ta.fb.Users(nil).Create(context.Background(), &models.User{
		ID: "11111111-1111-1111-1111-111111111111", Email: "demo@campus.edu", Username: "demo", Name: "Demo",
	})
	require.NoError(t, err)
	require.NoError(t, ta.fb.Posts(nil).Create(context.Background(), &models.Post{
		ID: "22222222-2222-2222-2222-222222222222", AuthorID: demo.ID, Content: "demo post",
	}))

	ta.primary.Fail(common.ErrUnavailable)

	w := ta.do(t, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Degraded)
	assert.Len(t, env.Data["posts"].([]any), 1)

	w = ta.do(t, http.MethodPost, "/api/posts", token, gin.H{"content": "during outage"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFollow_SelfRejected(t *testing.T) {
	ta := newTestAPI(t)
	token, userID := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/profile/"+userID+"/follow", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fieldsOf(t, decode(t, w)), "userId")
}

func TestMessages_NonParticipantDenied(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")
	_, bobID := ta.signupAndLogin(t, "bob@campus.edu", "Bob")
	carolToken, _ := ta.signupAndLogin(t, "carol@campus.edu", "Carol")

	w := ta.do(t, http.MethodPost, "/api/messages", aliceToken, gin.H{
		"recipientId": bobID, "content": "private",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	convID := decode(t, w).Data["conversationId"].(string)

	w = ta.do(t, http.MethodGet, "/api/messages?conversationId="+convID, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMarketplace_PublicBrowseAndValidation(t *testing.T) {
	ta := newTestAPI(t)
	token, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPost, "/api/marketplace", token, gin.H{
		"title": "desk lamp", "price": 12.5, "category": "furniture",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ta.do(t, http.MethodGet, "/api/marketplace", "", nil)
	require.Equal(t, http.StatusOK, w.Code, "marketplace browse is public")
	env := decode(t, w)
	assert.Len(t, env.Data["listings"].([]any), 1)

	w = ta.do(t, http.MethodGet, "/api/marketplace?category=weapons", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ta.do(t, http.MethodGet, "/api/marketplace?minPrice=-3", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ta.do(t, http.MethodPost, "/api/marketplace", "", gin.H{
		"title": "x", "price": 1, "category": "other",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotifications_Flow(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, _ := ta.signupAndLogin(t, "alice@campus.edu", "Alice")
	bobToken, _ := ta.signupAndLogin(t, "bob@campus.edu", "Bob")

	w := ta.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{"content": "notify me"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decode(t, w).Data["id"].(string)

	w = ta.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%s/like", postID), bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ta.do(t, http.MethodGet, "/api/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, float64(1), env.Data["unreadCount"])
	notifs := env.Data["notifications"].([]any)
	require.Len(t, notifs, 1)
	notifID := notifs[0].(map[string]any)["id"].(string)

	w = ta.do(t, http.MethodPut, "/api/notifications", aliceToken, gin.H{
		"notificationIds": []string{notifID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w).Data["updated"])

	w = ta.do(t, http.MethodGet, "/api/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w).Data["unreadCount"], "notifications are caller-scoped")
}

func TestProfile_GetAndUpdate(t *testing.T) {
	ta := newTestAPI(t)
	token, userID := ta.signupAndLogin(t, "alice@campus.edu", "Alice")

	w := ta.do(t, http.MethodPut, "/api/profile", token, gin.H{"bio": "CS senior"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CS senior", decode(t, w).Data["bio"])

	w = ta.do(t, http.MethodGet, "/api/profile?userId="+userID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Alice", env.Data["name"])
	assert.Empty(t, env.Data["email"], "anonymous callers never see the email")

	w = ta.do(t, http.MethodPut, "/api/profile", token, gin.H{"website": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
