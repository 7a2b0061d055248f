package views

// ViewState is the state shared by every view model: terminal
// dimensions and the one-line status message rendered under the
// content. View models embed it.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize records the terminal dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status message; isErr selects the error style
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage drops the status message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
