package conversation

// Entry persists one question/answer exchange with its metadata.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Rating    int    `json:"rating"`
	Pinned    bool   `json:"pinned"`
}

// Achievements tracks lightweight per-session counters shown in the footer.
type Achievements struct {
	QuestionsToday  int  `json:"questionsToday"`
	FirstUploadDone bool `json:"firstUploadDone"`
}

// TimestampLayout is the human-readable entry timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"
