// Package judge drives a submission from creation to a terminal verdict. The
// backend has no push channel, so the client polls the status endpoint on a
// fixed period until the verdict stops changing.
package judge

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
)

// ErrEmptyCode is returned by Submit before any network call.
var ErrEmptyCode = errors.New("code is empty")

// Mode of a submission.
type Mode string

// Submission modes. A test run returns a synchronous result against the
// sample case; an official submission enters the judging queue and is polled.
const (
	ModeTest     Mode = "test"
	ModeOfficial Mode = "official"
)

// Creation sentinels the backend expects on a submit request.
const (
	submitStatusTesting = "TESTING"
	submitStatusPending = "PENDING"
)

// API is the backend surface the poller needs. Implemented by api.Client.
type API interface {
	SubmitProblem(ctx context.Context, request *api.SubmitProblemRequest) (*api.Submission, error)
	GetSubmissionStatus(ctx context.Context, submissionID api.ID) (*api.Submission, error)
	StreamChatSimple(ctx context.Context, query string) (api.Stream, error)
}

// Poller owns one submission's lifecycle. One instance per submit action.
type Poller struct {
	client   API
	interval time.Duration
	// Invoked with every observed poll result, in completion order.
	onUpdate func(*api.Submission)

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPoller instantiates a poller.
func NewPoller(client API, interval time.Duration, onUpdate func(*api.Submission)) *Poller {
	return &Poller{client: client, interval: interval, onUpdate: onUpdate}
}

// SubmitRequest for one submission.
type SubmitRequest struct {
	ProblemID int64
	UserID    int64
	Language  string
	Code      string
	Mode      Mode
	ContestID int64
}

// Submit validates and creates the submission. For ModeOfficial the returned
// submission carries the id to poll; for ModeTest it is the completed run.
func (p *Poller) Submit(ctx context.Context, request *SubmitRequest) (*api.Submission, error) {
	if strings.TrimSpace(request.Code) == "" {
		return nil, ErrEmptyCode
	}
	if request.UserID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	status := submitStatusPending
	if request.Mode == ModeTest {
		status = submitStatusTesting
	}
	submission, err := p.client.SubmitProblem(ctx, &api.SubmitProblemRequest{
		ProblemID: request.ProblemID,
		UserID:    request.UserID,
		Language:  request.Language,
		Code:      request.Code,
		Status:    status,
		ContestID: request.ContestID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "submitting")
	}
	return submission, nil
}

// Run polls the submission until a terminal verdict and returns it. The loop
// is single-flight: each tick waits for the previous query to complete, so
// poll responses can never overlap or apply stale results. The first query is
// issued after one interval, giving the backend time to create judging state.
// A failed query stops the loop immediately; the caller may re-initiate.
func (p *Poller) Run(ctx context.Context, submissionID api.ID) (*api.Submission, error) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer func() {
		cancel()
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		submission, err := p.client.GetSubmissionStatus(ctx, submissionID)
		if err != nil {
			return nil, errors.Wrap(err, "querying status")
		}
		if p.onUpdate != nil {
			p.onUpdate(submission)
		}
		if Status(submission.Status).Terminal() {
			return submission, nil
		}
	}
}

// Stop cancels the poll loop. Safe to call multiple times and when nothing is
// running; callers invoke it on teardown so no orphaned loop keeps firing.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
