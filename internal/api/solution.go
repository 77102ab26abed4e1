package api

import (
	"context"
	"net/url"
	"strconv"
)

// AddSolutionRequest to share a solution for a problem.
type AddSolutionRequest struct {
	ProblemID int64  `json:"problemId"`
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    int    `json:"status,omitempty"`
	Msg       string `json:"msg,omitempty"`
}

// AddSolution submits a solution for moderation.
func (c *Client) AddSolution(ctx context.Context, request *AddSolutionRequest) error {
	return c.postJSON(ctx, "/solution/add", nil, request, nil)
}

// SearchSolutionsRequest filters the solution listing. Visible selects the
// moderation state to list.
type SearchSolutionsRequest struct {
	Keyword   string
	Visible   int
	PageNum   int
	PageSize  int
	ProblemID int64
}

// SearchSolutions returns the solutions matching the request.
func (c *Client) SearchSolutions(ctx context.Context, request *SearchSolutionsRequest) ([]*Solution, error) {
	params := url.Values{}
	params.Set("keyword", request.Keyword)
	params.Set("visible", strconv.Itoa(request.Visible))
	params.Set("pageNum", strconv.Itoa(request.PageNum))
	params.Set("pageSize", strconv.Itoa(request.PageSize))
	if request.ProblemID != 0 {
		params.Set("problemId", strconv.FormatInt(request.ProblemID, 10))
	}
	var solutions []*Solution
	if err := c.get(ctx, "/solution/search", params, &solutions); err != nil {
		return nil, err
	}
	return solutions, nil
}

// GetSolutionsByProblemID returns the approved solutions of a problem.
func (c *Client) GetSolutionsByProblemID(ctx context.Context, problemID int64, pageNum, pageSize int) ([]*Solution, error) {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	params.Set("pageNum", strconv.Itoa(pageNum))
	params.Set("pageSize", strconv.Itoa(pageSize))
	var solutions []*Solution
	if err := c.get(ctx, "/solution/getByProblemId", params, &solutions); err != nil {
		return nil, err
	}
	return solutions, nil
}

// ApproveSolution makes a solution visible.
func (c *Client) ApproveSolution(ctx context.Context, solutionID int64) error {
	params := url.Values{}
	params.Set("solutionId", strconv.FormatInt(solutionID, 10))
	return c.get(ctx, "/solution/approve", params, nil)
}

// RejectSolution hides a solution.
func (c *Client) RejectSolution(ctx context.Context, solutionID int64) error {
	params := url.Values{}
	params.Set("solutionId", strconv.FormatInt(solutionID, 10))
	return c.get(ctx, "/solution/reject", params, nil)
}
