package tui

// uploadDoneMsg is sent when a document has been read and extracted.
type uploadDoneMsg struct {
	Filename string
	Err      error
}

// generateDoneMsg is sent when a quiz request has finished.
type generateDoneMsg struct {
	Err error
}
