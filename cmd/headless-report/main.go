package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tomz197/lanebattle/internal/config"
	"github.com/tomz197/lanebattle/internal/match"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string
	outcome  match.Outcome
	elapsed  float64
	frames   int

	humanKing    int
	computerKing int
	// captured[seat][type] counts pieces the seat destroyed
	captured [2][match.PieceTypeCount]int
}

func main() {
	var runs int
	var dt float64
	var maxSeconds float64
	var seedBase int64
	var seedStep int64
	var configPath string

	flag.IntVar(&runs, "runs", 10, "number of headless matches")
	flag.Float64Var(&dt, "dt", 1.0/60, "fixed time step in seconds")
	flag.Float64Var(&maxSeconds, "max-seconds", 1800, "give up on a match after this much simulated time")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "YAML config file with match rules")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		os.Exit(2)
	}

	cfg, err := config.Load(config.ConfigPath(configPath))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	rules := cfg.Rules()

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d dt=%.4f max_seconds=%.0f seed_base=%d seed_step=%d\n\n", runs, dt, maxSeconds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMatch(i+1, seed, rules, dt, maxSeconds)
		all = append(all, stats)
		printRun(os.Stdout, stats)
	}
	printAggregate(os.Stdout, all)
}

// runMatch plays one computer-vs-computer match at a fixed step.
func runMatch(runIndex int, seed int64, rules match.Rules, dt, maxSeconds float64) runStats {
	m := match.New(match.WithRules(rules), match.WithSeed(seed), match.WithAutopilot())
	for !m.Finished() && m.Elapsed() < maxSeconds {
		m.Update(dt, nil)
	}

	human := m.Side(match.SeatHuman)
	computer := m.Side(match.SeatComputer)
	return runStats{
		runIndex:     runIndex,
		seed:         seed,
		matchID:      m.ID().String(),
		outcome:      m.Outcome(),
		elapsed:      m.Elapsed(),
		frames:       m.Frame(),
		humanKing:    human.King.Health,
		computerKing: computer.King.Health,
		captured:     [2][match.PieceTypeCount]int{human.Captured, computer.Captured},
	}
}

func printRun(w io.Writer, s runStats) {
	fmt.Fprintf(w, "run %d seed=%d match=%s\n", s.runIndex, s.seed, s.matchID)
	fmt.Fprintf(w, "  outcome=%s elapsed=%.1fs frames=%d\n", s.outcome, s.elapsed, s.frames)
	fmt.Fprintf(w, "  kings: human=%d computer=%d\n", s.humanKing, s.computerKing)
	for _, seat := range []match.Seat{match.SeatHuman, match.SeatComputer} {
		fmt.Fprintf(w, "  %-8s captured:", seat)
		for _, t := range match.AllPieceTypes() {
			fmt.Fprintf(w, " %s=%d", t, s.captured[seat][t])
		}
		fmt.Fprintln(w)
	}
}

type aggregate struct {
	humanWins, computerWins, undecided    int
	minElapsed, medianElapsed, maxElapsed float64
}

func summarize(all []runStats) aggregate {
	var a aggregate
	durations := make([]float64, 0, len(all))
	for _, s := range all {
		switch s.outcome {
		case match.OutcomeHumanWon:
			a.humanWins++
		case match.OutcomeComputerWon:
			a.computerWins++
		default:
			a.undecided++
			continue
		}
		durations = append(durations, s.elapsed)
	}
	if len(durations) == 0 {
		return a
	}
	sort.Float64s(durations)
	a.minElapsed = durations[0]
	a.maxElapsed = durations[len(durations)-1]
	a.medianElapsed = durations[len(durations)/2]
	return a
}

func printAggregate(w io.Writer, all []runStats) {
	a := summarize(all)
	fmt.Fprintf(w, "\n=== Aggregate ===\n")
	fmt.Fprintf(w, "human_won=%d computer_won=%d undecided=%d\n", a.humanWins, a.computerWins, a.undecided)
	if a.humanWins+a.computerWins > 0 {
		fmt.Fprintf(w, "decided match duration: min=%.1fs median=%.1fs max=%.1fs\n", a.minElapsed, a.medianElapsed, a.maxElapsed)
	}
}
