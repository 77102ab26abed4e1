package api

import (
	"strconv"
	"strings"
)

// ID is a backend snowflake identifier. The backend emits them as JSON
// numbers too large for a float64 round-trip, so they are kept as strings.
type ID string

// UnmarshalJSON accepts both a JSON number and a JSON string.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	*id = ID(strings.Trim(string(b), `"`))
	return nil
}

// Int64 parses the id. Returns 0 when the id is empty or non-numeric.
func (id ID) Int64() int64 {
	value, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// User as returned by the backend.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     int    `json:"status"`
	CreateTime string `json:"createTime"`
	AvatarURL  string `json:"avatarUrl"`
}

// ProblemTag attached to a problem.
type ProblemTag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Problem detail.
type Problem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	TimeLimit   int    `json:"timeLimit"`
	MemoryLimit int    `json:"memoryLimit"`
	Status      int    `json:"status"`
	CreateTime  string `json:"createTime"`
	TestInput   string `json:"testInput,omitempty"`
	TestOutput  string `json:"testOutput,omitempty"`
}

// ProblemBrief is a problem as listed by search, with aggregate counts.
type ProblemBrief struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Difficulty      int           `json:"difficulty"`
	TimeLimit       int           `json:"timeLimit"`
	MemoryLimit     int           `json:"memoryLimit"`
	Status          int           `json:"status"`
	CreateTime      string        `json:"createTime"`
	AcceptedCount   int64         `json:"acceptedCount"`
	SubmissionCount int64         `json:"submissionCount"`
	Tags            []*ProblemTag `json:"tags"`
}

// ProblemCase is one test case of a problem.
type ProblemCase struct {
	ID        int64  `json:"id"`
	ProblemID int64  `json:"problemId"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// Submission to the judge. Status is one of the judge's verdict strings; the
// state machine over them lives in the judge package.
type Submission struct {
	ID             ID     `json:"id"`
	ProblemID      int64  `json:"problemId"`
	UserID         int64  `json:"userId"`
	Language       string `json:"language"`
	Code           string `json:"code,omitempty"`
	Status         string `json:"status"`
	Runtime        int64  `json:"runtime"`
	Memory         int64  `json:"memory"`
	CreateTime     string `json:"createTime,omitempty"`
	FailMsg        string `json:"failMsg,omitempty"`
	Input          string `json:"input,omitempty"`
	Output         string `json:"output,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	ContestID      int64  `json:"contestId,omitempty"`
}

// Solution shared by a user for a problem.
type Solution struct {
	ID         int64  `json:"id"`
	ProblemID  int64  `json:"problemId"`
	UserID     int64  `json:"userId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreateTime string `json:"createTime"`
	UpdateTime string `json:"updateTime"`
	Likes      int64  `json:"likes"`
	Status     int    `json:"status"`
	Msg        string `json:"msg,omitempty"`
}

// Contest listing.
type Contest struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CreateTime      string `json:"createTime"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Duration        int    `json:"duration"`
	PenaltyConstant int    `json:"penaltyConstant"`
}

// ContestProblem is a problem as attached to a contest.
type ContestProblem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	ProblemSeq  int    `json:"problemSeq"`
}

// ChatSession is a chat conversation as listed by the backend.
type ChatSession struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	UserID     int64  `json:"userId"`
	CreateTime string `json:"createTime"`
}
