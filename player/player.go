package player

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pulse/debug"
	"go-pulse/engine"
	"go-pulse/midi"
)

// Player is the clock/transport collaborator: it regenerates a bar
// from an atomically snapshotted parameter set at every bar boundary,
// walks the steps on a wall-clock timer, and turns firing steps into
// MIDI notes with their micro-timing offsets applied as send delays.

const (
	minTempo = 20
	maxTempo = 300
	// NoteOff lands this far through the step.
	gateFraction = 0.6
)

type Player struct {
	mu sync.Mutex

	eng    *engine.Engine
	params engine.Params
	length int
	tempo  int

	channel uint8
	notes   [engine.NumVoices]uint8
	send    midi.Sender

	playing  bool
	stopChan chan struct{}
	step     int
	bar      engine.Bar

	// StepChan and BarChan feed the TUI; sends never block.
	StepChan chan int
	BarChan  chan engine.Bar
}

// New builds a player around an engine. No port is open yet.
func New(eng *engine.Engine, notes [engine.NumVoices]uint8, channel uint8, length, tempo int) *Player {
	p := &Player{
		eng:      eng,
		params:   engine.DefaultParams(),
		length:   engine.ClampLength(length),
		tempo:    clampTempo(tempo),
		channel:  channel,
		notes:    notes,
		StepChan: make(chan int, 1),
		BarChan:  make(chan engine.Bar, 1),
	}
	eng.Tempo = float64(p.tempo)
	p.bar = eng.GenerateBar(p.params, p.length)
	return p
}

// OpenPort connects the MIDI output (substring match, empty = first).
func (p *Player) OpenPort(name string) (string, error) {
	send, portName, err := midi.OpenOut(name)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	p.send = send
	p.mu.Unlock()
	debug.Log("player", "opened MIDI out %q", portName)
	return portName, nil
}

// Close stops playback and shuts the MIDI driver down.
func (p *Player) Close() {
	p.Stop()
	midi.Close()
}

// SetParams replaces the control snapshot used at the next bar
// boundary. Mid-bar the current bar keeps playing untouched.
func (p *Player) SetParams(params engine.Params) {
	p.mu.Lock()
	p.params = params.Clamped()
	p.mu.Unlock()
}

// Params returns the current control snapshot.
func (p *Player) Params() engine.Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

// SetTempo clamps and applies a new tempo.
func (p *Player) SetTempo(bpm int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tempo = clampTempo(bpm)
	p.eng.Tempo = float64(p.tempo)
}

// Tempo returns the current tempo.
func (p *Player) Tempo() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempo
}

// SetLength snaps the pattern length; takes effect at the next bar.
func (p *Player) SetLength(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.length = engine.ClampLength(n)
}

// Length returns the pattern length.
func (p *Player) Length() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.length
}

// Reseed queues a soft reseed (next phrase) or reseeds immediately.
func (p *Player) Reseed(seed uint32, hard bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if hard {
		p.eng.Reseed(seed)
	} else {
		p.eng.RequestReseed(seed)
	}
	debug.Log("player", "reseed requested (hard=%v seed=%#x)", hard, seed)
}

// Seed returns the current pattern seed.
func (p *Player) Seed() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eng.Drift.PatternSeed
}

// CurrentBar returns the bar being played.
func (p *Player) CurrentBar() engine.Bar {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bar
}

// CurrentStep returns the playhead position.
func (p *Player) CurrentStep() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step
}

// Playing reports transport state.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play starts the step clock.
func (p *Player) Play() {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = true
	p.stopChan = make(chan struct{})
	p.step = 0
	p.eng.Reset()
	p.regenerateLocked()
	p.mu.Unlock()

	debug.Log("player", "play")
	go p.playLoop()
}

// Stop halts the clock and silences all voices.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	close(p.stopChan)
	send := p.send
	notes := p.notes
	channel := p.channel
	p.mu.Unlock()

	if send != nil {
		for _, note := range notes {
			send(gomidi.NoteOff(channel, note))
		}
	}
	debug.Log("player", "stop")
}

// Toggle flips the transport.
func (p *Player) Toggle() {
	if p.Playing() {
		p.Stop()
	} else {
		p.Play()
	}
}

func (p *Player) playLoop() {
	for {
		p.mu.Lock()
		if !p.playing {
			p.mu.Unlock()
			return
		}
		step := p.step
		bar := p.bar
		tempo := p.tempo
		send := p.send
		notes := p.notes
		channel := p.channel
		sampleRate := p.eng.SampleRate
		stopChan := p.stopChan
		p.mu.Unlock()

		// 16th-note step duration.
		stepDur := time.Duration(float64(time.Second) * 60.0 / float64(tempo) / 4.0)

		if send != nil {
			p.fireStep(bar, step, stepDur, sampleRate, send, notes, channel)
		}

		select {
		case p.StepChan <- step:
		default:
		}

		select {
		case <-stopChan:
			return
		case <-time.After(stepDur):
		}

		p.mu.Lock()
		p.step++
		if p.step >= bar.Length {
			p.step = 0
			p.eng.EndBar()
			p.regenerateLocked()
		}
		p.mu.Unlock()
	}
}

// fireStep emits NoteOn/NoteOff for every voice firing at this step,
// delayed by the step's timing offset.
// TODO: schedule negative offsets with one-step lookahead instead of
// clamping them to the grid.
func (p *Player) fireStep(bar engine.Bar, step int, stepDur time.Duration, sampleRate float64, send midi.Sender, notes [engine.NumVoices]uint8, channel uint8) {
	for v := 0; v < engine.NumVoices; v++ {
		voice := bar.Voices[v]
		if !voice.Hits.IsSet(step) {
			continue
		}
		velocity := uint8(voice.Velocity[step] * 127)
		delay := time.Duration(float64(voice.Offsets[step]) / sampleRate * float64(time.Second))
		if delay < 0 {
			delay = 0
		}
		note := notes[v]
		gate := time.Duration(float64(stepDur) * gateFraction)
		time.AfterFunc(delay, func() {
			send(gomidi.NoteOn(channel, note, velocity))
			time.AfterFunc(gate, func() {
				send(gomidi.NoteOff(channel, note))
			})
		})
	}
}

// regenerateLocked produces the next bar from the current snapshot.
// Caller holds the mutex.
func (p *Player) regenerateLocked() {
	p.bar = p.eng.GenerateBar(p.params, p.length)
	select {
	case p.BarChan <- p.bar:
	default:
	}
	debug.LogEvery(4, "player", "bar generated: primary=%#x secondary=%#x aux=%#x",
		p.bar.Voices[0].Hits.Bits(), p.bar.Voices[1].Hits.Bits(), p.bar.Voices[2].Hits.Bits())
}

func clampTempo(bpm int) int {
	if bpm < minTempo {
		return minTempo
	}
	if bpm > maxTempo {
		return maxTempo
	}
	return bpm
}
