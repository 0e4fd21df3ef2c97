package model

import "time"

// SubmissionRequest is the payload for submitting code against a question.
type SubmissionRequest struct {
	FileContents string `json:"file_contents"`
	QuestionNum  int    `json:"question_num"`
}

// SubmissionResult carries the grader's console output for a submission.
type SubmissionResult struct {
	ConsoleLog string `json:"console_log"`
}

// Draft is in-progress code (and the last grader output) for one question,
// persisted so a page reload never loses unsubmitted work.
type Draft struct {
	SessionID   string    `json:"-"`
	QuestionNum int       `json:"question_num"`
	Code        string    `json:"code"`
	LastOutput  string    `json:"last_output"`
	UpdatedAt   time.Time `json:"updated_at"`
}
