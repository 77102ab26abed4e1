package api

import (
	"context"
	"net/url"
	"strconv"
)

// SearchProblemsRequest filters the problem listing. Zero fields are omitted.
type SearchProblemsRequest struct {
	TitleKeyword       string
	DescriptionKeyword string
	TagName            string
	TagID              int64
	PageNum            int
	PageSize           int
}

// SearchProblems returns the problems matching the request.
func (c *Client) SearchProblems(ctx context.Context, request *SearchProblemsRequest) ([]*ProblemBrief, error) {
	params := url.Values{}
	if request.TitleKeyword != "" {
		params.Set("titleKeyword", request.TitleKeyword)
	}
	if request.DescriptionKeyword != "" {
		params.Set("descriptionKeyword", request.DescriptionKeyword)
	}
	if request.TagName != "" {
		params.Set("tagName", request.TagName)
	}
	if request.TagID != 0 {
		params.Set("tagId", strconv.FormatInt(request.TagID, 10))
	}
	if request.PageNum != 0 {
		params.Set("pageNum", strconv.Itoa(request.PageNum))
	}
	if request.PageSize != 0 {
		params.Set("pageSize", strconv.Itoa(request.PageSize))
	}
	var problems []*ProblemBrief
	if err := c.get(ctx, "/problem/search", params, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// GetProblemDetail by id.
func (c *Client) GetProblemDetail(ctx context.Context, problemID int64) (*Problem, error) {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	problem := &Problem{}
	if err := c.get(ctx, "/problem/detail", params, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// CreateProblemRequest to add a problem.
type CreateProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	TimeLimit   int    `json:"timeLimit"`
	MemoryLimit int    `json:"memoryLimit"`
	Status      int    `json:"status,omitempty"`
	TestInput   string `json:"testInput,omitempty"`
	TestOutput  string `json:"testOutput,omitempty"`
}

// CreateProblem adds a problem.
func (c *Client) CreateProblem(ctx context.Context, request *CreateProblemRequest) error {
	return c.postJSON(ctx, "/problem/add", nil, request, nil)
}

// SubmitProblemRequest carries one submission. Status is the backend's
// creation sentinel: "PENDING" for an official submission, "TESTING" for a
// test run.
type SubmitProblemRequest struct {
	ProblemID int64  `json:"problemId"`
	UserID    int64  `json:"userId"`
	Language  string `json:"language"`
	Code      string `json:"code"`
	Status    string `json:"status,omitempty"`
	ContestID int64  `json:"contestId,omitempty"`
}

// SubmitProblem submits code for judging. For an official submission the
// returned submission carries the id to poll; for a test run it carries the
// completed result.
func (c *Client) SubmitProblem(ctx context.Context, request *SubmitProblemRequest) (*Submission, error) {
	submission := &Submission{}
	if err := c.postJSON(ctx, "/problem/submit", nil, request, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// GetSubmissionCount of a problem.
func (c *Client) GetSubmissionCount(ctx context.Context, problemID int64) (int64, error) {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	var count int64
	if err := c.get(ctx, "/problem/getSubmissionCount", params, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetPassedCount of a problem.
func (c *Client) GetPassedCount(ctx context.Context, problemID int64) (int64, error) {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	var count int64
	if err := c.get(ctx, "/problem/getPassedCount", params, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetProblemCases returns the visible test cases of a problem.
func (c *Client) GetProblemCases(ctx context.Context, problemID int64) ([]*ProblemCase, error) {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	var cases []*ProblemCase
	if err := c.get(ctx, "/problemCase/getProblemCases", params, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetSubmissionStatus queries the judging status of a submission.
func (c *Client) GetSubmissionStatus(ctx context.Context, submissionID ID) (*Submission, error) {
	params := url.Values{}
	params.Set("submissionId", string(submissionID))
	submission := &Submission{}
	if err := c.get(ctx, "/submit/getStatus", params, submission); err != nil {
		return nil, err
	}
	return submission, nil
}
