package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/configuration"
)

func newTestClient(t *testing.T, serverURL string) (*Client, *auth.Store) {
	t.Helper()
	credentials := auth.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	config := &configuration.Config{
		APIHost:        serverURL,
		RequestTimeout: 5,
	}
	return NewClient(config, credentials), credentials
}

func TestEnvelopeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/problem/detail", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("problemId"))
		w.Write([]byte(`{"code":200,"msg":"","data":{"id":42,"title":"Two Sum","difficulty":1,"timeLimit":1000,"memoryLimit":256}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	problem, err := client.GetProblemDetail(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), problem.ID)
	assert.Equal(t, "Two Sum", problem.Title)
	assert.Equal(t, 1000, problem.TimeLimit)
}

func TestEnvelopeCodeZeroIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"id":1,"title":"A"}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	problem, err := client.GetProblemDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", problem.Title)
}

func TestBusinessError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":500,"msg":"problem does not exist"}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	_, err := client.GetProblemDetail(context.Background(), 7)
	require.Error(t, err)
	businessError := &BusinessError{}
	require.True(t, errors.As(err, &businessError))
	assert.Equal(t, 500, businessError.Code)
	assert.Equal(t, "problem does not exist", businessError.Error())
}

func TestUnauthorizedClearsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	client, credentials := newTestClient(t, server.URL)
	require.NoError(t, credentials.Set(&auth.Credentials{Token: "stale", UserID: 3}))

	_, err := client.GetProblemDetail(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, credentials.Token())
}

func TestBearerTokenRereadPerRequest(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.Write([]byte(`{"code":200,"data":{"id":1}}`))
	}))
	defer server.Close()
	client, credentials := newTestClient(t, server.URL)

	_, err := client.GetProblemDetail(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, credentials.Set(&auth.Credentials{Token: "fresh", UserID: 3}))
	_, err = client.GetProblemDetail(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, headers, 2)
	assert.Empty(t, headers[0])
	assert.Equal(t, "Bearer fresh", headers[1])
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/login", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("username"))
		assert.Equal(t, "hunter2", r.URL.Query().Get("password"))
		w.Write([]byte(`{"code":200,"data":{"id":7,"username":"alice","email":"alice@example.com","role":"user"},"map":{"token":"tok-123"}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	credentials, err := client.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", credentials.Token)
	assert.Equal(t, int64(7), credentials.UserID)
	require.NotNil(t, credentials.UserInfo)
	assert.Equal(t, "alice", credentials.UserInfo.Username)
}

func TestLoginWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"id":7,"username":"alice"}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	_, err := client.Login(context.Background(), "alice", "hunter2")
	require.Error(t, err)
}

func TestSnowflakeIDSurvivesDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submit/getStatus", r.URL.Path)
		w.Write([]byte(`{"code":200,"data":{"id":1951882397156749314,"status":"Judging"}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	submission, err := client.GetSubmissionStatus(context.Background(), "1951882397156749314")
	require.NoError(t, err)
	assert.Equal(t, ID("1951882397156749314"), submission.ID)
	assert.Equal(t, "Judging", submission.Status)
}

func TestUploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "fake-png-bytes", string(content))
		w.Write([]byte(`{"code":200,"data":"http://cdn.example.com/avatar.png"}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	imageURL, err := client.UploadImage(context.Background(), "avatar.png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.com/avatar.png", imageURL)
}

func TestSubmitProblemCarriesSentinel(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"code":200,"data":{"id":1001,"status":"Pending"}}`))
	}))
	defer server.Close()
	client, _ := newTestClient(t, server.URL)

	submission, err := client.SubmitProblem(context.Background(), &SubmitProblemRequest{
		ProblemID: 42,
		UserID:    7,
		Language:  "cpp",
		Code:      "int main() {}",
		Status:    "PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, ID("1001"), submission.ID)
	assert.Equal(t, "PENDING", gotBody["status"])
	assert.Equal(t, float64(42), gotBody["problemId"])
}
