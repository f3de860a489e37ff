package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursefinder/chat"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/recommend"
	"github.com/poiesic/coursefinder/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	courses      []core.Course
	lastQuery    string
	lastTopK     int
	lastCriteria search.Criteria
	lastRequest  recommend.Request
	lastProfile  chat.Profile
	chatErr      error
}

func (f *fakeService) Search(_ context.Context, query string, topK int) []core.ScoredCourse {
	f.lastQuery = query
	f.lastTopK = topK
	return []core.ScoredCourse{{Course: f.courses[0], SimilarityScore: 0.9, Rank: 1}}
}

func (f *fakeService) GetByID(_ context.Context, id string) (*core.Course, bool) {
	for i := range f.courses {
		if f.courses[i].ID == id {
			c := f.courses[i]
			return &c, true
		}
	}
	return nil, false
}

func (f *fakeService) Filter(_ context.Context, criteria search.Criteria) []core.Course {
	f.lastCriteria = criteria
	return search.Filter(f.courses, criteria)
}

func (f *fakeService) Recommend(_ context.Context, req recommend.Request) []core.ScoredCourse {
	f.lastRequest = req
	return []core.ScoredCourse{}
}

func (f *fakeService) Chat(_ context.Context, message string, profile chat.Profile) (chat.Reply, error) {
	f.lastProfile = profile
	if f.chatErr != nil {
		return chat.Reply{}, f.chatErr
	}
	return chat.Reply{Text: "reply to " + message, Courses: []core.ScoredCourse{}}, nil
}

func newTestServer(t *testing.T, opts ...Option) (*fakeService, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &fakeService{courses: []core.Course{
		{ID: "c1", Title: "Intro to Python", Category: "Programming", Difficulty: "Beginner", Skills: []string{"python"}},
		{ID: "c2", Title: "Advanced ML", Category: "Data Science", Difficulty: "Advanced", Skills: []string{"ml"}},
	}}
	srv, err := New(svc, opts...)
	require.NoError(t, err)
	return svc, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealthCheck(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}

func TestListCourses(t *testing.T) {
	svc, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/courses?difficulty=beginner&skill=Python&skill=go", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body coursesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "c1", body.Courses[0].ID)
	assert.Equal(t, []string{"Python", "go"}, svc.lastCriteria.Skills)
	assert.Equal(t, "beginner", svc.lastCriteria.Difficulty)
}

func TestGetCourse(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/courses/c2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var course core.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	assert.Equal(t, "Advanced ML", course.Title)

	rec = do(t, h, http.MethodGet, "/api/courses/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "course_not_found", decodeError(t, rec).Code)
}

func TestSearch(t *testing.T) {
	svc, h := newTestServer(t, WithDefaultTopK(3))

	rec := do(t, h, http.MethodGet, "/api/search?q=python", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "python", svc.lastQuery)
	assert.Equal(t, 3, svc.lastTopK)

	var body resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, 1, body.Results[0].Rank)
	assert.Contains(t, rec.Body.String(), `"similarity_score":0.9`)

	rec = do(t, h, http.MethodGet, "/api/search?q=python&top_k=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.lastTopK)
}

func TestSearch_BadRequests(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_query", decodeError(t, rec).Code)

	for _, topK := range []string{"zero", "0", "-2", "1000"} {
		rec = do(t, h, http.MethodGet, "/api/search?q=x&top_k="+topK, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, topK)
		assert.Equal(t, "invalid_top_k", decodeError(t, rec).Code)
	}
}

func TestRecommendations(t *testing.T) {
	svc, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/recommendations",
		`{"interests":"python","background":"accountant","skill_level":"Beginner"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, recommend.Request{
		Interests:  "python",
		Background: "accountant",
		SkillLevel: "Beginner",
		TopK:       recommend.DefaultTopK,
	}, svc.lastRequest)

	var body resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "python accountant Beginner", body.Query)
	assert.NotNil(t, body.Results)

	rec = do(t, h, http.MethodPost, "/api/recommendations", `{"interests":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/api/recommendations", `{"interests":"x","top_k":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	svc, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/chat",
		`{"message":"I'm new to coding","history":[{"role":"user","content":"I want to learn Python"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reply to I'm new to coding", body.Reply)
	assert.Equal(t, "I want to learn Python", body.Profile.Interests)
	assert.Equal(t, "Beginner", body.Profile.SkillLevel)
	assert.Equal(t, body.Profile, svc.lastProfile)
}

func TestChat_ExplicitProfile(t *testing.T) {
	svc, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/chat",
		`{"message":"hi","profile":{"interests":"art","skill_level":"Advanced"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chat.Profile{Interests: "art", SkillLevel: "Advanced"}, svc.lastProfile)
}

func TestChat_Errors(t *testing.T) {
	svc, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_message", decodeError(t, rec).Code)

	svc.chatErr = chat.ErrAssistantUnavailable
	rec = do(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "assistant_unavailable", decodeError(t, rec).Code)

	svc.chatErr = errors.New("boom")
	rec = do(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(decodeError(t, rec).Message, "boom"))
}

func TestCORS(t *testing.T) {
	_, h := newTestServer(t, WithAllowedOrigins("http://localhost:3000"))

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardAmongOrigins(t *testing.T) {
	_, h := newTestServer(t, WithAllowedOrigins("*", "http://localhost:3000"))

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&fakeService{}, WithDefaultTopK(0))
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := New(&fakeService{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Run(ctx, "127.0.0.1:0"))
}
