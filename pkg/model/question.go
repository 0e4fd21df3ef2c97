package model

// Document is a titled documentation page shown alongside questions.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Question is the participant-facing view of a problem.
type Question struct {
	Num         int        `json:"num"`
	Writeup     string     `json:"writeup"`
	StarterCode string     `json:"starter_code"`
	Docs        []Document `json:"docs"`
}

// QuestionsPublic is the backend response for the participant question list:
// the questions plus documentation applicable to all of them.
type QuestionsPublic struct {
	Questions  []Question `json:"questions"`
	GlobalDocs []Document `json:"global_docs"`
}

// Problem is the supervisor-facing authoring view of a question, including
// the grading cases participants never see.
type Problem struct {
	Num         int        `json:"num"`
	Prompt      string     `json:"prompt"`
	StarterCode string     `json:"starter_code"`
	TestCases   string     `json:"test_cases"`
	DemoCases   string     `json:"demo_cases"`
	Docs        []Document `json:"docs,omitempty"`
}
