package editor

import (
	"fmt"
	"strings"
)

// Status is the read-only summary shown in the status bar.
type Status struct {
	Path     string
	Encoding string
	Language string
	Modified bool
}

func (s Status) String() string {
	path := s.Path
	if path == "" {
		path = "unsaved"
	}
	state := "saved"
	if s.Modified {
		state = "modified"
	}
	return strings.Join([]string{
		fmt.Sprintf("File: %s", path),
		fmt.Sprintf("Encoding: %s", s.Encoding),
		fmt.Sprintf("Language: %s", s.Language),
		fmt.Sprintf("State: %s", state),
	}, " | ")
}
