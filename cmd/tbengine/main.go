// tbengine - endgame tablebase construction and probing
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yourusername/egtb/internal/manifest"
	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/pkg/engine"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		cmdBuild(args)
	case "value":
		cmdValue(args)
	case "moves":
		cmdMoves(args)
	case "apply":
		cmdApply(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tbengine - Endgame Tablebase Engine

Usage: tbengine <command> [options]

Commands:
  build     Build one table or a manifest of tables
  value     Look up the value and expected winner of a position
  moves     List legal moves with their resulting values
  apply     Apply a legal move and print the successor

Use "tbengine <command> -h" for command-specific help.

Piece Set Format:
  Tables are named by their non-king slots, two letters each:
  W/B for the colour and K Q R B N P for the kind. "WQ" is king and
  queen versus king; "WBWN" is king, bishop and knight versus king.

Position Format:
  Comma-separated integers "turn,bk,wk,..." with turn 0 for White and
  1 for Black, squares 0-63 (row*8+column) and 64 for a captured
  piece. Example: 0,56,42,41`)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func parsePosition(posStr string, spec *position.Spec) ([]int, error) {
	parts := strings.Split(posStr, ",")
	if len(parts) != spec.Len()+1 {
		return nil, fmt.Errorf("position needs %d entries for %s, got %d",
			spec.Len()+1, spec.ID(), len(parts))
	}
	pos := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad position entry %q", part)
		}
		pos[i] = v
	}
	if _, err := spec.CheckIndex(pos); err != nil {
		return nil, err
	}
	return pos, nil
}

func loadTable(pieces, dir string, verbose bool) (*engine.Table, *position.Spec) {
	spec, err := position.ParseID(pieces)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	t, err := engine.Load(spec, engine.Options{Dir: dir, Logger: newLogger(verbose)}, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading table %s: %v\n", spec.ID(), err)
		os.Exit(1)
	}
	return t, spec
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	pieces := fs.String("pieces", "", "Piece set to build (e.g. WQ)")
	manifestPath := fs.String("manifest", "", "XML manifest of piece sets to build in order")
	dir := fs.String("dir", ".", "Directory for table files")
	archive := fs.Bool("archive", false, "Also write zstd archives")
	summary := fs.Bool("summary", false, "Print a table summary after each build")
	arena := fs.Int("arena", engine.DefaultSuccessorsPerPosition, "Successor arena size per position")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if *pieces == "" && *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -pieces or -manifest required")
		os.Exit(1)
	}

	log := newLogger(*verbose)
	opts := engine.Options{
		Dir:                   *dir,
		SuccessorsPerPosition: *arena,
		Logger:                log,
	}

	var specs []*position.Spec
	if *manifestPath != "" {
		m, err := manifest.LoadXML(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		specs, err = m.BuildOrder()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		spec, err := position.ParseID(*pieces)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		specs = []*position.Spec{spec}
	}

	reg, err := engine.BuildAll(specs, opts, *archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *summary {
		for _, id := range reg.IDs() {
			if t, ok := reg.Get(id); ok && t.HasStatus() {
				t.Summarize().Log(log)
			}
		}
	}
}

func cmdValue(args []string) {
	fs := flag.NewFlagSet("value", flag.ExitOnError)
	pieces := fs.String("pieces", "", "Piece set (e.g. WQ)")
	dir := fs.String("dir", ".", "Directory for table files")
	posFlag := fs.String("position", "", "Position as turn,bk,wk,...")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if *pieces == "" || *posFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: tbengine value -pieces <set> -position <turn,bk,wk,...>")
		os.Exit(1)
	}

	t, spec := loadTable(*pieces, *dir, *verbose)
	pos, err := parsePosition(*posFlag, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := t.Value(pos)
	fmt.Printf("Value:  %s\n", formatValue(v))
	fmt.Printf("Status: %08b\n", t.Status(pos))
	fmt.Printf("Winner: %s\n", t.ExpectedWinner(pos))
}

func formatValue(v int8) string {
	switch v {
	case engine.Illegal:
		return "illegal"
	case engine.Unforceable:
		return "unforceable (drawn)"
	case engine.Unknown:
		return "unknown"
	}
	return fmt.Sprintf("%+d", v)
}

func cmdMoves(args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	pieces := fs.String("pieces", "", "Piece set (e.g. WQ)")
	dir := fs.String("dir", ".", "Directory for table files")
	posFlag := fs.String("position", "", "Position as turn,bk,wk,...")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if *pieces == "" || *posFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: tbengine moves -pieces <set> -position <turn,bk,wk,...>")
		os.Exit(1)
	}

	t, spec := loadTable(*pieces, *dir, *verbose)
	pos, err := parsePosition(*posFlag, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	moves := t.LegalMoves(pos)
	if len(moves) == 0 {
		fmt.Println("No legal moves")
		return
	}
	for i, m := range moves {
		applied, err := t.Apply(pos, m)
		if err != nil {
			continue
		}
		note := ""
		if m.Capture {
			note = fmt.Sprintf("  (captures slot %d)", m.CapturedSlot)
		}
		fmt.Printf("  %2d. %s %d-%d  value %s%s\n",
			i+1, spec.Pieces[m.Slot].Code(), m.From, m.To,
			formatValue(t.Value(applied)), note)
	}
}

func cmdApply(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	pieces := fs.String("pieces", "", "Piece set (e.g. WQ)")
	dir := fs.String("dir", ".", "Directory for table files")
	posFlag := fs.String("position", "", "Position as turn,bk,wk,...")
	slot := fs.Int("slot", -1, "Moving piece slot")
	to := fs.Int("to", -1, "Destination square")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	if *pieces == "" || *posFlag == "" || *slot < 0 || *to < 0 {
		fmt.Fprintln(os.Stderr, "Usage: tbengine apply -pieces <set> -position <...> -slot <n> -to <sq>")
		os.Exit(1)
	}

	t, spec := loadTable(*pieces, *dir, *verbose)
	pos, err := parsePosition(*posFlag, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, m := range t.LegalMoves(pos) {
		if m.Slot != *slot || m.To != *to {
			continue
		}
		succ, err := t.Apply(pos, m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		parts := make([]string, len(succ))
		for i, x := range succ {
			parts[i] = strconv.Itoa(x)
		}
		fmt.Printf("Position: %s\n", strings.Join(parts, ","))
		fmt.Printf("Value:    %s\n", formatValue(t.Value(succ)))
		fmt.Printf("Winner:   %s\n", t.ExpectedWinner(succ))
		return
	}
	fmt.Fprintln(os.Stderr, "Error: no such legal move")
	os.Exit(1)
}
