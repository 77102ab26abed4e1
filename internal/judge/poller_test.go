package judge

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
)

type fakeStream struct {
	chunks []string
	index  int
}

func (s *fakeStream) Recv() (string, error) {
	if s.index < len(s.chunks) {
		chunk := s.chunks[s.index]
		s.index++
		return chunk, nil
	}
	return "", io.EOF
}

func (s *fakeStream) Close() {}

type fakeAPI struct {
	mu sync.Mutex

	submitRequest *api.SubmitProblemRequest
	submitResult  *api.Submission
	submitErr     error

	// One entry per poll, consumed in order. An entry with a non-nil err fails
	// that poll.
	polls []pollResult
	calls int

	adviceQuery  string
	adviceChunks []string
}

type pollResult struct {
	submission *api.Submission
	err        error
}

func (f *fakeAPI) SubmitProblem(ctx context.Context, request *api.SubmitProblemRequest) (*api.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitRequest = request
	return f.submitResult, f.submitErr
}

func (f *fakeAPI) GetSubmissionStatus(ctx context.Context, submissionID api.ID) (*api.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls >= len(f.polls) {
		return nil, errors.New("unexpected extra poll")
	}
	result := f.polls[f.calls]
	f.calls++
	return result.submission, result.err
}

func (f *fakeAPI) StreamChatSimple(ctx context.Context, query string) (api.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adviceQuery = query
	return &fakeStream{chunks: f.adviceChunks}, nil
}

func (f *fakeAPI) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func submission(status string) *api.Submission {
	return &api.Submission{ID: "1001", Status: status}
}

func TestStatusStateMachine(t *testing.T) {
	tests := []struct {
		status         Status
		inProgress     bool
		terminal       bool
		compileFailure bool
	}{
		{status: StatusPending, inProgress: true},
		{status: StatusJudging, inProgress: true},
		{status: StatusAccepted, terminal: true},
		{status: StatusCompileFail, terminal: true, compileFailure: true},
		{status: StatusCompilationError, terminal: true, compileFailure: true},
		{status: StatusWrongAnswer, terminal: true},
		{status: StatusTimeLimitExceeded, terminal: true},
		{status: StatusMemoryLimitExceeded, terminal: true},
		{status: StatusRuntimeError, terminal: true},
		{status: StatusInternalError, terminal: true},
		{status: Status("")},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.inProgress, tc.status.InProgress())
			assert.Equal(t, tc.terminal, tc.status.Terminal())
			assert.Equal(t, tc.compileFailure, tc.status.CompileFailure())
		})
	}
}

func TestSubmitRejectsEmptyCode(t *testing.T) {
	poller := NewPoller(&fakeAPI{}, time.Millisecond, nil)
	_, err := poller.Submit(context.Background(), &SubmitRequest{UserID: 7, Code: "  \n "})
	assert.ErrorIs(t, err, ErrEmptyCode)
}

func TestSubmitRequiresLogin(t *testing.T) {
	poller := NewPoller(&fakeAPI{}, time.Millisecond, nil)
	_, err := poller.Submit(context.Background(), &SubmitRequest{Code: "int main() {}"})
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
}

func TestSubmitModeSentinels(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{mode: ModeOfficial, want: "PENDING"},
		{mode: ModeTest, want: "TESTING"},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			client := &fakeAPI{submitResult: submission("Pending")}
			poller := NewPoller(client, time.Millisecond, nil)
			_, err := poller.Submit(context.Background(), &SubmitRequest{
				ProblemID: 42,
				UserID:    7,
				Language:  "cpp",
				Code:      "int main() {}",
				Mode:      tc.mode,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, client.submitRequest.Status)
		})
	}
}

func TestRunPollsUntilTerminal(t *testing.T) {
	client := &fakeAPI{polls: []pollResult{
		{submission: submission("Pending")},
		{submission: submission("Judging")},
		{submission: submission("Judging")},
		{submission: submission("Accepted")},
	}}
	var observed []string
	poller := NewPoller(client, time.Millisecond, func(s *api.Submission) {
		observed = append(observed, s.Status)
	})

	result, err := poller.Run(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "Accepted", result.Status)
	// The loop stops on the first terminal verdict, never polling past it.
	assert.Equal(t, 4, client.pollCount())
	assert.Equal(t, []string{"Pending", "Judging", "Judging", "Accepted"}, observed)
}

func TestRunReportsFinalMetrics(t *testing.T) {
	accepted := &api.Submission{ID: "1001", Status: "Accepted", Runtime: 4, Memory: 2}
	client := &fakeAPI{polls: []pollResult{
		{submission: submission("Judging")},
		{submission: accepted},
	}}
	poller := NewPoller(client, time.Millisecond, nil)

	result, err := poller.Run(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Runtime)
	assert.Equal(t, int64(2), result.Memory)
}

func TestRunStopsOnQueryError(t *testing.T) {
	client := &fakeAPI{polls: []pollResult{
		{submission: submission("Pending")},
		{err: errors.New("backend down")},
	}}
	poller := NewPoller(client, time.Millisecond, nil)

	_, err := poller.Run(context.Background(), "1001")
	require.Error(t, err)
	assert.Equal(t, 2, client.pollCount())
}

func TestStopCancelsRun(t *testing.T) {
	// An endless stream of in-progress verdicts; only Stop ends the loop.
	polls := make([]pollResult, 1000)
	for i := range polls {
		polls[i] = pollResult{submission: submission("Judging")}
	}
	client := &fakeAPI{polls: polls}
	poller := NewPoller(client, time.Millisecond, nil)

	done := make(chan error, 1)
	go func() {
		_, err := poller.Run(context.Background(), "1001")
		done <- err
	}()

	require.Eventually(t, func() bool { return client.pollCount() > 2 }, 5*time.Second, time.Millisecond)
	poller.Stop()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
}

func TestStopIsIdempotent(t *testing.T) {
	poller := NewPoller(&fakeAPI{}, time.Millisecond, nil)
	poller.Stop()
	poller.Stop()
}

func TestStreamCompileAdvice(t *testing.T) {
	client := &fakeAPI{adviceChunks: []string{"You are missing ", "a semicolon."}}
	poller := NewPoller(client, time.Millisecond, nil)
	failed := &api.Submission{
		ID:      "1001",
		Status:  "Compile Fail",
		FailMsg: "error: expected ';' before '}' token",
	}

	var got string
	err := poller.StreamCompileAdvice(context.Background(), "int main() { return 0 }", failed, func(chunk string) {
		got += chunk
	})
	require.NoError(t, err)
	assert.Equal(t, "You are missing a semicolon.", got)
	assert.True(t, strings.Contains(client.adviceQuery, "int main() { return 0 }"))
	assert.True(t, strings.Contains(client.adviceQuery, "expected ';' before '}' token"))
}
