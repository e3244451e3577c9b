package types

import (
	"strconv"
	"strings"
)

type Mode string

const (
	ModeLive Mode = "live"
	ModeTest Mode = "test"
)

// ActionPreview is the numeric form of the preview action some host links still pass.
const ActionPreview = 1024

// ModeFromAction maps the optional action request parameter to an execution mode.
func ModeFromAction(action string) Mode {
	action = strings.TrimSpace(action)
	if strings.EqualFold(action, "preview") {
		return ModeTest
	}

	if n, err := strconv.Atoi(action); err == nil && n == ActionPreview {
		return ModeTest
	}

	return ModeLive
}

func (m Mode) IsTest() bool {
	return m == ModeTest
}
