package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go-pulse/engine"
	"go-pulse/midi"
)

// pulsedump inspects the generator from the command line: dump bars at
// a parameter point, sweep one parameter to watch the pattern morph, or
// list MIDI ports.

var (
	flagEnergy float64
	flagShape  float64
	flagAxisX  float64
	flagAxisY  float64
	flagDrift  float64
	flagAccent float64
	flagSeed   uint32
	flagLength int
	flagBars   int
)

func main() {
	root := &cobra.Command{
		Use:   "pulsedump",
		Short: "Inspect generated percussion patterns",
	}
	root.PersistentFlags().Float64Var(&flagEnergy, "energy", 0.5, "density (0-1)")
	root.PersistentFlags().Float64Var(&flagShape, "shape", 0.2, "character (0-1)")
	root.PersistentFlags().Float64Var(&flagAxisX, "axis-x", 0.5, "on/off-beat bias (0-1)")
	root.PersistentFlags().Float64Var(&flagAxisY, "axis-y", 0.5, "uniform/peaky bias (0-1)")
	root.PersistentFlags().Float64Var(&flagDrift, "drift", 0, "evolution rate (0-1)")
	root.PersistentFlags().Float64Var(&flagAccent, "accent", 0.5, "dynamics (0-1)")
	root.PersistentFlags().Uint32Var(&flagSeed, "seed", engine.DefaultPatternSeed, "pattern seed")
	root.PersistentFlags().IntVar(&flagLength, "length", 32, "pattern length (16/24/32/64)")

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print generated bars at the given parameters",
		Run:   runDump,
	}
	dumpCmd.Flags().IntVar(&flagBars, "bars", 1, "number of bars to generate")

	sweepCmd := &cobra.Command{
		Use:   "sweep <param> <from> <to> <steps>",
		Short: "Sweep one parameter and show how the primary mask morphs",
		Args:  cobra.ExactArgs(4),
		RunE:  runSweep,
	}

	portsCmd := &cobra.Command{
		Use:   "ports",
		Short: "List MIDI output ports",
		Run: func(cmd *cobra.Command, args []string) {
			names := midi.ListOutPorts()
			if len(names) == 0 {
				fmt.Println("no MIDI output ports")
				return
			}
			for i, name := range names {
				fmt.Printf("  %d: %s\n", i, name)
			}
			midi.Close()
		},
	}

	root.AddCommand(dumpCmd, sweepCmd, portsCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func params() engine.Params {
	return engine.Params{
		Energy: flagEnergy,
		Shape:  flagShape,
		AxisX:  flagAxisX,
		AxisY:  flagAxisY,
		Drift:  flagDrift,
		Accent: flagAccent,
	}
}

func runDump(cmd *cobra.Command, args []string) {
	eng := engine.New(flagSeed)
	p := params()
	fmt.Printf("seed=%08x zone=%s\n", eng.Drift.PatternSeed, engine.ZoneFor(p.Energy))
	for bar := 0; bar < flagBars; bar++ {
		b := eng.GenerateBar(p, flagLength)
		fmt.Printf("bar %d\n", bar+1)
		names := []string{"primary  ", "secondary", "aux      "}
		for v := 0; v < engine.NumVoices; v++ {
			fmt.Printf("  %s %s\n", names[v], renderMask(b.Voices[v], b.Length))
		}
		eng.EndBar()
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	var from, to float64
	var steps int
	if _, err := fmt.Sscanf(args[1], "%f", &from); err != nil {
		return fmt.Errorf("bad from value %q", args[1])
	}
	if _, err := fmt.Sscanf(args[2], "%f", &to); err != nil {
		return fmt.Errorf("bad to value %q", args[2])
	}
	if _, err := fmt.Sscanf(args[3], "%d", &steps); err != nil || steps < 1 {
		return fmt.Errorf("bad step count %q", args[3])
	}

	var prev uint64
	for i := 0; i <= steps; i++ {
		v := from + (to-from)*float64(i)/float64(steps)
		p := params()
		switch strings.ToLower(args[0]) {
		case "energy":
			p.Energy = v
		case "shape":
			p.Shape = v
		case "axis-x":
			p.AxisX = v
		case "axis-y":
			p.AxisY = v
		case "drift":
			p.Drift = v
		case "accent":
			p.Accent = v
		default:
			return fmt.Errorf("unknown parameter %q", args[0])
		}
		b := engine.New(flagSeed).GenerateBar(p, flagLength)
		mask := b.Voices[engine.RolePrimary].Hits
		changed := ""
		if i > 0 {
			diff := 0
			for s := 0; s < b.Length; s++ {
				if (mask.Bits()^prev)&(1<<uint(s)) != 0 {
					diff++
				}
			}
			changed = fmt.Sprintf("  (%d bits changed)", diff)
		}
		fmt.Printf("%s=%.3f  %s%s\n", args[0], v, renderMask(b.Voices[engine.RolePrimary], b.Length), changed)
		prev = mask.Bits()
	}
	return nil
}

func renderMask(v engine.VoicePattern, n int) string {
	var out strings.Builder
	for s := 0; s < n; s++ {
		if s > 0 && s%4 == 0 {
			out.WriteByte(' ')
		}
		if v.Hits.IsSet(s) {
			// Velocity as a single digit, 0-9.
			d := int(v.Velocity[s] * 9.99)
			if d > 9 {
				d = 9
			}
			out.WriteByte(byte('0' + d))
		} else {
			out.WriteByte('-')
		}
	}
	return out.String()
}
