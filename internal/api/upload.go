package api

import (
	"context"
	"io"
	"net/url"
	"strconv"
)

// UploadImage uploads an image and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var imageURL string
	if err := c.postMultipart(ctx, "/image/upload", nil, filename, content, &imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

// UploadProblemCasesZip uploads a zip of test cases for a problem.
func (c *Client) UploadProblemCasesZip(ctx context.Context, problemID int64, filename string, content io.Reader) error {
	params := url.Values{}
	params.Set("problemId", strconv.FormatInt(problemID, 10))
	return c.postMultipart(ctx, "/problemCase/uploadZip", params, filename, content, nil)
}
