package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/subject-advisor/internal/ai"
	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/recommend"
	"github.com/spigell/subject-advisor/internal/store"
	"github.com/spigell/subject-advisor/internal/survey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecorder struct {
	mu   sync.Mutex
	subs []store.Submission
	err  error
}

func (f *fakeRecorder) Append(_ context.Context, sub store.Submission) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}
	f.subs = append(f.subs, sub)
	return int64(len(f.subs)), nil
}

type fakeNarrator struct {
	text string
	err  error
}

func (f *fakeNarrator) Narrate(_ context.Context, _ survey.Result, _ recommend.Analysis) (*ai.Commentary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Commentary{Text: f.text}, nil
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()

	srv, err := New(Config{Host: "127.0.0.1", Port: 5000}, deps)
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }
	return srv
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("ho_ten", "Nguyễn Văn A")
	form.Set("lop", "10A1")
	form.Set("sdt", "0901234567")
	form.Set("email", "a@example.com")
	form.Set("mon_"+catalog.Math, "5")
	form.Set("mon_"+catalog.Physics, "5")
	form.Set("mon_"+catalog.Chemistry, "4")
	form.Set("mon_"+catalog.Literature, "2")
	form.Add(careersField, "Kỹ thuật - Công nghệ")
	return form
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/result", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAddr(t *testing.T) {
	srv := newTestServer(t, Deps{})
	assert.Equal(t, "127.0.0.1:5000", srv.Addr())
}

func TestIndexAndSurveyPages(t *testing.T) {
	srv := newTestServer(t, Deps{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Toán - Lý - Hóa")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/survey", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `name="mon_Toán"`)
	assert.Contains(t, body, `name="`+catalog.QuestionHobbies+`"`)
	assert.Contains(t, body, `name="cau5"`)
	assert.Contains(t, body, "Câu 4.")
}

func TestResultRendersAndStores(t *testing.T) {
	recorder := &fakeRecorder{}
	srv := newTestServer(t, Deps{
		Recorder: recorder,
		Narrator: &fakeNarrator{text: "Bạn có thế mạnh tự nhiên."},
	})

	rec := postForm(t, srv.Handler(), validForm())
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Nguyễn Văn A")
	assert.Contains(t, body, "Toán - Lý - Hóa")
	assert.Contains(t, body, "Bạn có thế mạnh tự nhiên.")

	require.Len(t, recorder.subs, 1)
	sub := recorder.subs[0]
	assert.Equal(t, "Nguyễn Văn A", sub.Student.FullName)
	assert.Equal(t, "10A1", sub.Student.Class)
	assert.Equal(t, "Toán - Lý - Hóa", sub.Suggestions[0])
	assert.NotEmpty(t, sub.Suggestions[2])
	assert.True(t, sub.CreatedAt.Equal(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)))
}

func TestResultSurvivesRecorderAndNarratorFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	srv := newTestServer(t, Deps{
		Recorder: &fakeRecorder{err: errors.New("disk full")},
		Narrator: &fakeNarrator{err: errors.New("quota")},
		Logger:   zap.New(core),
	})

	rec := postForm(t, srv.Handler(), validForm())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Nhận xét thêm")

	assert.Equal(t, 1, logs.FilterMessage("saving submission").Len())
	assert.Equal(t, 1, logs.FilterMessage("ai commentary failed").Len())
}

func TestResultRejectsIncompleteSubmissions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(url.Values)
	}{
		{name: "missing name", modify: func(f url.Values) { f.Del("ho_ten") }},
		{name: "bad email", modify: func(f url.Values) { f.Set("email", "not-an-email") }},
		{name: "bad phone", modify: func(f url.Values) { f.Set("sdt", "09x") }},
		{name: "rating not a number", modify: func(f url.Values) { f.Set("mon_"+catalog.Math, "abc") }},
		{name: "negative rating", modify: func(f url.Values) { f.Set("mon_"+catalog.Math, "-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			srv := newTestServer(t, Deps{Recorder: recorder})

			form := validForm()
			tt.modify(form)

			rec := postForm(t, srv.Handler(), form)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Đã xảy ra lỗi, có thể bạn đã bỏ sót một câu hỏi nào đó.")
			assert.Empty(t, recorder.subs)
		})
	}
}

func TestAPIAnalyze(t *testing.T) {
	srv := newTestServer(t, Deps{})

	payload, err := json.Marshal(survey.Result{
		SubjectRatings:  map[string]int{catalog.Literature: 5, catalog.History: 4, catalog.Geography: 4},
		CareerInterests: []string{"Khoa học Xã hội"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got recommend.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Recommendations, recommend.TopN)
	assert.Equal(t, "Văn - Sử - Địa", got.Recommendations[0].Name)
	assert.Len(t, got.Lines, 3)
}

func TestAPIAnalyzeRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, Deps{})

	for name, body := range map[string]string{
		"broken json":     `{"subject_ratings":`,
		"negative rating": `{"subject_ratings":{"Toán":-3}}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, Deps{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, err := New(Config{Host: "127.0.0.1", Port: 0}, Deps{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
