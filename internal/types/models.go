package types

// ComplaintRecord is the structured view of one spoken complaint.
type ComplaintRecord struct {
	Issue    string `json:"issue"`
	Urgency  string `json:"urgency"`
	Location string `json:"location"`
	RawText  string `json:"raw_text"`
}

// ActionCard tells staff who owns a complaint and what to do next.
type ActionCard struct {
	Department string `json:"department"`
	Priority   string `json:"priority"`
	Action     string `json:"action"`
}

// ProcessResult is returned by the processor for one recording or text.
type ProcessResult struct {
	ID          string          `json:"id"`
	AudioPath   string          `json:"audio_path,omitempty"`
	Transcript  string          `json:"transcript"`
	Transcribed bool            `json:"transcribed"`
	Language    string          `json:"language"`
	Record      ComplaintRecord `json:"record"`
	Action      ActionCard      `json:"action"`
	DurationMs  int64           `json:"duration_ms"`
	Error       string          `json:"error,omitempty"`
}
