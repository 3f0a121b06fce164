package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dygy/beatgen/internal/config"
	"github.com/dygy/beatgen/internal/midifile"
	"github.com/dygy/beatgen/internal/pattern"
	"github.com/dygy/beatgen/internal/play"
	"github.com/dygy/beatgen/internal/render"
	"github.com/dygy/beatgen/internal/server"
	"github.com/dygy/beatgen/internal/strudel"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beatgen",
	Short: "Generate humanized drum patterns",
	Long: `beatgen procedurally generates drum patterns in five styles
(rock, jazz, electronic, latin, lofi) with swing and humanization,
and exports them as Strudel code, MIDI, or rendered WAV audio.`,
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a drum pattern",
	Long: `Generate a drum pattern and write it to stdout or a file.

Examples:
  beatgen generate --style rock --bpm 120 --bars 4
  beatgen generate -s jazz -t 3/4 --complexity 0.8 --format midi -o waltz.mid
  beatgen generate -s electronic --bars 8 --seed 42 --format wav -o loop.wav`,
	RunE: runGenerate,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Generate a pattern and play it through the speakers",
	Long: `Generate a drum pattern, render it, and play it on the default
audio device.

Examples:
  beatgen play --style lofi --bpm 75
  beatgen play -s latin --loop`,
	RunE: runPlay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON API for pattern generation.

Example:
  beatgen serve --port 8080`,
	RunE: runServe,
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available styles and drum kits",
	RunE:  runStyles,
}

var (
	// shared generation flags
	styleName  string
	timeSig    string
	bpm        int
	bars       int
	complexity float64
	dynamics   float64
	seed       int64
	configPath string

	// generate flags
	outputPath string
	format     string
	drumKit    string
	quantize   int

	// play flags
	loopPlay bool

	// serve flags
	port int
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stylesCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./beatgen.yaml)")

	for _, cmd := range []*cobra.Command{generateCmd, playCmd} {
		cmd.Flags().StringVarP(&styleName, "style", "s", "", "Style (rock, jazz, electronic, latin, lofi)")
		cmd.Flags().StringVarP(&timeSig, "time-signature", "t", "", "Time signature (3/4, 4/4, 5/4, 6/8, 7/8)")
		cmd.Flags().IntVar(&bpm, "bpm", 0, "Tempo in beats per minute (60-200)")
		cmd.Flags().IntVarP(&bars, "bars", "b", 0, "Number of bars (1, 2, 4, or 8)")
		cmd.Flags().Float64VarP(&complexity, "complexity", "c", -1, "Pattern density 0-1")
		cmd.Flags().Float64VarP(&dynamics, "dynamics", "d", -1, "Velocity intensity 0-1")
		cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = random)")
	}

	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().StringVarP(&format, "format", "f", "strudel", "Output format (strudel, json, midi, wav)")
	generateCmd.Flags().StringVar(&drumKit, "drum-kit", "", "Drum kit for Strudel output (tr808, tr909, linn, acoustic, lofi)")
	generateCmd.Flags().IntVarP(&quantize, "quantize", "q", 16, "Strudel grid resolution (4, 8, or 16)")

	playCmd.Flags().BoolVar(&loopPlay, "loop", false, "Loop the pattern until interrupted")

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on")
}

// buildSettings merges config defaults with whichever flags were set.
func buildSettings(cmd *cobra.Command, cfg *config.Config) (pattern.Settings, error) {
	s := cfg.Settings()

	if cmd.Flags().Changed("style") {
		s.Style = pattern.ParseStyle(styleName)
	}
	if cmd.Flags().Changed("time-signature") {
		s.TimeSignature = pattern.ParseTimeSignature(timeSig)
	}
	if cmd.Flags().Changed("bpm") {
		s.BPM = bpm
	}
	if cmd.Flags().Changed("bars") {
		s.Bars = bars
	}
	if cmd.Flags().Changed("complexity") {
		s.Complexity = complexity
	}
	if cmd.Flags().Changed("dynamics") {
		s.Dynamics = dynamics
	}

	if err := s.Validate(); err != nil {
		return pattern.Settings{}, err
	}
	return s, nil
}

func newGenerator() *pattern.Generator {
	if seed != 0 {
		return pattern.NewWithSeed(seed)
	}
	return pattern.New()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if quantize != 4 && quantize != 8 && quantize != 16 {
		return fmt.Errorf("invalid quantize value: %d (must be 4, 8, or 16)", quantize)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	settings, err := buildSettings(cmd, cfg)
	if err != nil {
		return err
	}

	p := newGenerator().Generate(settings)

	switch format {
	case "strudel":
		kit := strudel.StyleKit(settings.Style)
		if drumKit != "" {
			kit = strudel.ParseDrumKit(drumKit)
		} else if cfg.Defaults.Kit != "" {
			kit = strudel.ParseDrumKit(cfg.Defaults.Kit)
		}
		return writeOutput([]byte(strudel.NewGenerator(quantize).Render(&p, kit)))

	case "json":
		data, err := json.MarshalIndent(&p, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(data)

	case "midi":
		if outputPath == "" {
			return fmt.Errorf("--output is required for midi format")
		}
		return midifile.WriteFile(&p, outputPath)

	case "wav":
		if outputPath == "" {
			return fmt.Errorf("--output is required for wav format")
		}
		return render.New(cfg.SampleRate).WriteFile(&p, outputPath)

	default:
		return fmt.Errorf("unknown format: %s (must be strudel, json, midi, or wav)", format)
	}
}

func writeOutput(data []byte) error {
	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputPath, data, 0644)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	settings, err := buildSettings(cmd, cfg)
	if err != nil {
		return err
	}

	p := newGenerator().Generate(settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nStopping...")
		cancel()
	}()

	fmt.Printf("Playing %s at %d BPM (%d bars of %s)...\n",
		settings.Style, settings.BPM, settings.Bars, settings.TimeSignature)

	player := play.New(render.New(cfg.SampleRate), loopPlay)
	if err := player.Play(ctx, &p); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	srv := server.New(server.Config{Port: cfg.Port, SampleRate: cfg.SampleRate})
	return srv.Run()
}

func runStyles(cmd *cobra.Command, args []string) error {
	fmt.Println("Styles:")
	for _, s := range pattern.Styles() {
		fmt.Printf("  %-11s %s (kit: %s)\n", s, pattern.StyleDescription(s), strudel.StyleKit(s))
	}
	fmt.Println("\nDrum kits:")
	for _, k := range strudel.AvailableDrumKits() {
		fmt.Printf("  %-9s %s\n", k, strudel.DrumKitDescription(k))
	}
	fmt.Println("\nTime signatures: 3/4, 4/4, 5/4, 6/8, 7/8")
	return nil
}
