//go:build cgo

package midi

import (
	// rtmididrv registers itself as the MIDI driver; it requires cgo.
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)
