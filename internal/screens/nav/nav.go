// Package nav holds navigation requests that screens send to the root
// model. The root model owns screen construction, so screens never import
// each other.
package nav

import tea "charm.land/bubbletea/v2"

// InputMode selects how the input screen captures a question.
type InputMode string

const (
	ModeCamera InputMode = "camera"
	ModeVoice  InputMode = "voice"
	ModeType   InputMode = "type"
)

// OpenInputMsg opens the input screen.
type OpenInputMsg struct {
	Mode InputMode
}

// OpenItemMsg opens a stored history record in its viewer. With Replace
// set the viewer takes the place of the current screen.
type OpenItemMsg struct {
	ID      string
	Replace bool
}

// OpenTutorMsg opens the tutor chat. Seed, when set, is sent once on entry.
type OpenTutorMsg struct {
	Seed string
}

// OpenHistoryMsg returns to the root and opens the history list.
type OpenHistoryMsg struct{}

// OpenSettingsMsg opens the settings screen.
type OpenSettingsMsg struct{}

// ThemeChangedMsg reports that the theme preference was switched.
type ThemeChangedMsg struct {
	Dark bool
}

// ProChangedMsg reports that the subscription flag changed.
type ProChangedMsg struct {
	Pro bool
}

// Cmd wraps msg in a command.
func Cmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
