package judge

// Status is a judging verdict. The strings are the backend's, verbatim.
type Status string

// Submission statuses.
const (
	StatusPending             Status = "Pending"
	StatusJudging             Status = "Judging"
	StatusAccepted            Status = "Accepted"
	StatusCompileFail         Status = "Compile Fail"
	StatusWrongAnswer         Status = "Wrong Answer"
	StatusTimeLimitExceeded   Status = "Time Limit Exceeded"
	StatusMemoryLimitExceeded Status = "Memory Limit Exceeded"
	StatusRuntimeError        Status = "Runtime Error"
	StatusCompilationError    Status = "Compilation Error"
	StatusInternalError       Status = "Internal Error"
)

// InProgress reports whether the judge is still working. Polling continues
// while this holds.
func (s Status) InProgress() bool {
	return s == StatusPending || s == StatusJudging
}

// Terminal reports whether no further transition can occur.
func (s Status) Terminal() bool {
	return s != "" && !s.InProgress()
}

// CompileFailure reports whether the verdict is a compile-time failure. The
// backend emits both spellings.
func (s Status) CompileFailure() bool {
	return s == StatusCompileFail || s == StatusCompilationError
}
