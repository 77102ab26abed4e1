package api

import (
	"context"
	"net/url"
	"strconv"
)

// SearchContests by keyword.
func (c *Client) SearchContests(ctx context.Context, keyword string, pageNum, pageSize int) ([]*Contest, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("pageNum", strconv.Itoa(pageNum))
	params.Set("pageSize", strconv.Itoa(pageSize))
	var contests []*Contest
	if err := c.get(ctx, "/contest/searchContest", params, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// GetContestProblems returns the problems attached to a contest.
func (c *Client) GetContestProblems(ctx context.Context, contestID int64) ([]*ContestProblem, error) {
	params := url.Values{}
	params.Set("contestId", strconv.FormatInt(contestID, 10))
	var problems []*ContestProblem
	if err := c.get(ctx, "/contest/getContestProblems", params, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// AddContestRequest to create a contest.
type AddContestRequest struct {
	Title           string
	Description     string
	StartTime       string
	EndTime         string
	Duration        int
	PenaltyConstant int
}

// AddContest creates a contest. The backend takes these as query parameters.
func (c *Client) AddContest(ctx context.Context, request *AddContestRequest) error {
	params := url.Values{}
	params.Set("title", request.Title)
	params.Set("description", request.Description)
	params.Set("startTime", request.StartTime)
	params.Set("endTime", request.EndTime)
	params.Set("duration", strconv.Itoa(request.Duration))
	params.Set("penaltyConstant", strconv.Itoa(request.PenaltyConstant))
	return c.get(ctx, "/contest/addContest", params, nil)
}

// DeleteContest by id.
func (c *Client) DeleteContest(ctx context.Context, contestID int64) error {
	params := url.Values{}
	params.Set("contestId", strconv.FormatInt(contestID, 10))
	return c.get(ctx, "/contest/deleteContest", params, nil)
}

// AddProblemToContest attaches an existing problem to a contest.
func (c *Client) AddProblemToContest(ctx context.Context, contestID, problemID int64) error {
	params := url.Values{}
	params.Set("contestId", strconv.FormatInt(contestID, 10))
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	return c.get(ctx, "/contest/addProblemToContest", params, nil)
}
