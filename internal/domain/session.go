package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateUpdatePhoto       UserState = "update_photo"
	StateUpdateDescription UserState = "update_description"
	StateSearchPhoto       UserState = "search_photo"
)

// Command names a confirmable photo operation, as it appears in confirm_<command>_<yes|no>
type Command string

const (
	CommandAdd     Command = "add"
	CommandReplace Command = "replace"
	CommandDelete  Command = "delete"
	CommandUpdate  Command = "update"
)

// Flow is the data captured by the photo operation in progress.
// A nil Flow means no operation is pending.
type Flow interface {
	Command() Command
	// Target returns the file id of the photo the operation is about
	Target() string
}

// AddCapture holds a photo submitted with a category caption
type AddCapture struct {
	PhotoID             string
	Category            string
	Description         string
	DescriptionTranslit string
}

func (f *AddCapture) Command() Command { return CommandAdd }
func (f *AddCapture) Target() string   { return f.PhotoID }

// ReplaceCapture holds the photo being replaced; NewPhotoID is empty until the
// replacement arrives.
type ReplaceCapture struct {
	PhotoID    string
	Category   string
	NewPhotoID string
}

func (f *ReplaceCapture) Command() Command { return CommandReplace }
func (f *ReplaceCapture) Target() string   { return f.PhotoID }

// DeleteConfirm holds the photo awaiting delete confirmation
type DeleteConfirm struct {
	PhotoID string
}

func (f *DeleteConfirm) Command() Command { return CommandDelete }
func (f *DeleteConfirm) Target() string   { return f.PhotoID }

// EditDescriptionCapture holds a new description; both New* fields are empty
// until the admin sends the text.
type EditDescriptionCapture struct {
	PhotoID                string
	NewDescription         string
	NewDescriptionTranslit string
}

func (f *EditDescriptionCapture) Command() Command { return CommandUpdate }
func (f *EditDescriptionCapture) Target() string   { return f.PhotoID }

// Ready reports whether the flow has everything its commit needs
func Ready(f Flow) bool {
	switch v := f.(type) {
	case *AddCapture:
		return v.PhotoID != "" && v.Category != "" && v.Description != ""
	case *ReplaceCapture:
		return v.PhotoID != "" && v.NewPhotoID != ""
	case *DeleteConfirm:
		return v.PhotoID != ""
	case *EditDescriptionCapture:
		return v.PhotoID != "" && v.NewDescription != ""
	}
	return false
}

// Session holds temporary data for one user in one chat
type Session struct {
	State UserState
	// Canceled is set by /cancel; buttons pressed afterwards are inert until a
	// new interaction starts.
	Canceled    bool
	Category    string
	CurrentPage int
	Flow        Flow
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// CanceledSession returns the session left behind by /cancel
func CanceledSession() *Session {
	return &Session{State: StateIdle, Canceled: true}
}

// Clone returns a copy that shares no flow data with s
func (s *Session) Clone() *Session {
	if s == nil {
		return NewSession()
	}
	c := *s
	switch v := s.Flow.(type) {
	case *AddCapture:
		f := *v
		c.Flow = &f
	case *ReplaceCapture:
		f := *v
		c.Flow = &f
	case *DeleteConfirm:
		f := *v
		c.Flow = &f
	case *EditDescriptionCapture:
		f := *v
		c.Flow = &f
	}
	return &c
}
