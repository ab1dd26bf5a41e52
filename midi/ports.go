package midi

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Thin wrapper over gomidi output ports: list, open by name or index,
// close the driver on shutdown.

// Sender emits a single MIDI message.
type Sender func(msg midi.Message) error

// ListOutPorts returns the names of all available output ports.
func ListOutPorts() []string {
	outs := midi.GetOutPorts()
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names
}

// OpenOut opens the first output port whose name contains the given
// substring (case-insensitive). An empty name opens the first port.
func OpenOut(name string) (Sender, string, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, "", fmt.Errorf("no MIDI output ports available")
	}
	var port drivers.Out
	if name == "" {
		port = outs[0]
	} else {
		for _, p := range outs {
			if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
				port = p
				break
			}
		}
	}
	if port == nil {
		return nil, "", fmt.Errorf("no MIDI output port matching %q", name)
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open port %s: %w", port.String(), err)
	}
	return Sender(send), port.String(), nil
}

// OpenOutIndex opens an output port by list position.
func OpenOutIndex(index int) (Sender, string, error) {
	outs := midi.GetOutPorts()
	if index < 0 || index >= len(outs) {
		return nil, "", fmt.Errorf("invalid port index: %d", index)
	}
	send, err := midi.SendTo(outs[index])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open port: %w", err)
	}
	return Sender(send), outs[index].String(), nil
}

// Close shuts down the MIDI driver.
func Close() {
	midi.CloseDriver()
}
