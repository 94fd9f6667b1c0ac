package tui

import (
	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/service"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg asks the active screen to re-read the roster store
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// StatusMsg shows a transient confirmation under the current screen
type StatusMsg struct {
	Text string
}

// OpenClientFormMsg opens the client form. An empty EditID means a new client.
type OpenClientFormMsg struct {
	EditID string
}

// rosterLoadedMsg reports that the roster store finished initializing
type rosterLoadedMsg struct {
	source service.Source
}

// sessionCheckMsg reports whether an operator is already logged in
type sessionCheckMsg struct {
	operator string
}

// loggedInMsg is sent once the login gate has been passed
type loggedInMsg struct {
	operator string
	warning  string
}

// clientSavedMsg reports the outcome of the client form
type clientSavedMsg struct {
	client domain.Client
	isNew  bool
	err    error
}
