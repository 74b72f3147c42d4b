// simshot runs single deliveries or outcome distributions from the command
// line, without starting the HTTP server.
//
// Examples:
//
//	simshot -a 30 -e 2 -s 90              # cover drive along the ground
//	simshot -a -10 -e 35 -s 100           # lofted shot over mid-on
//	simshot -a 0 -e 40 -s 110 -n 500      # straight six attempt, distribution
//	simshot -a 45 -e 5 -s 25 -d hard -f attacking
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/cricklab/fieldsim/engine"
	"github.com/cricklab/fieldsim/field"
)

type options struct {
	speed      float64
	angle      float64
	elevation  float64
	difficulty string
	layout     string
	layoutDir  string
	boundary   float64
	iterations int
	seed       uint64
	asJSON     bool
}

func main() {
	var opts options
	flag.Float64Var(&opts.speed, "speed", 0, "exit speed (km/h)")
	flag.Float64Var(&opts.speed, "s", 0, "exit speed (shorthand)")
	flag.Float64Var(&opts.angle, "angle", 0, "horizontal angle (degrees): 0=straight, +ve=off, -ve=leg")
	flag.Float64Var(&opts.angle, "a", 0, "horizontal angle (shorthand)")
	flag.Float64Var(&opts.elevation, "elevation", 0, "vertical angle (degrees above horizontal)")
	flag.Float64Var(&opts.elevation, "e", 0, "vertical angle (shorthand)")
	flag.StringVar(&opts.difficulty, "difficulty", "medium", "fielding difficulty: easy, medium, hard")
	flag.StringVar(&opts.difficulty, "d", "medium", "fielding difficulty (shorthand)")
	flag.StringVar(&opts.layout, "field", "standard", "field layout name")
	flag.StringVar(&opts.layout, "f", "standard", "field layout (shorthand)")
	flag.StringVar(&opts.layoutDir, "layouts", "", "directory of custom layout YAML files")
	flag.Float64Var(&opts.boundary, "boundary", 65, "boundary distance (metres)")
	flag.IntVar(&opts.iterations, "n", 1, "run multiple times to see the outcome distribution")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the crypto source)")
	flag.BoolVar(&opts.asJSON, "json", false, "output as JSON")
	flag.Parse()

	if opts.speed <= 0 {
		fmt.Fprintln(os.Stderr, "simshot: -speed is required and must be positive")
		flag.Usage()
		os.Exit(2)
	}

	diff := engine.Difficulty(opts.difficulty)
	if !diff.Valid() {
		fmt.Fprintf(os.Stderr, "simshot: unknown difficulty %q\n", opts.difficulty)
		os.Exit(2)
	}

	layouts, err := field.All(opts.layoutDir)
	if err != nil {
		log.Fatalf("load layouts: %v", err)
	}
	layout, ok := layouts[opts.layout]
	if !ok {
		fmt.Fprintf(os.Stderr, "simshot: unknown layout %q (have %s)\n",
			opts.layout, strings.Join(field.SortedNames(layouts), ", "))
		os.Exit(2)
	}

	rng := engine.DefaultSource()
	if opts.seed != 0 {
		rng = engine.NewSeededSource(opts.seed)
	}
	sim := engine.NewSimulator(engine.DefaultParams(), rng, log.New(os.Stderr, "", 0))

	in := engine.Input{
		ExitSpeedKmh:    opts.speed,
		HorizontalAngle: opts.angle,
		VerticalAngle:   opts.elevation,
		BoundaryDist:    opts.boundary,
		Difficulty:      diff,
		Field:           layout.Fielders,
	}

	if opts.iterations > 1 {
		runDistribution(sim, in, opts)
		return
	}
	runSingle(sim, in, opts)
}

func runSingle(sim *engine.Simulator, in engine.Input, opts options) {
	res := sim.SimulateDelivery(in)

	if opts.asJSON {
		out := map[string]any{
			"input":  in,
			"result": res,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}

	side := "straight"
	if opts.angle > 0 {
		side = "off side"
	} else if opts.angle < 0 {
		side = "leg side"
	}

	rule := strings.Repeat("=", 60)
	fmt.Println("\n" + rule)
	fmt.Println("SHOT SIMULATION")
	fmt.Println(rule)
	fmt.Println("\nInput:")
	fmt.Printf("  Speed:      %g km/h\n", opts.speed)
	fmt.Printf("  H. Angle:   %g deg (%s)\n", opts.angle, side)
	fmt.Printf("  Elevation:  %g deg\n", opts.elevation)
	fmt.Printf("  Difficulty: %s\n", opts.difficulty)
	fmt.Printf("  Field:      %s\n", opts.layout)
	if t := res.Trajectory; t != nil {
		fmt.Println("\nCalculated trajectory:")
		fmt.Printf("  Distance:   %.1fm\n", t.ProjectedDistance)
		fmt.Printf("  Max height: %.1fm\n", t.MaxHeight)
		fmt.Printf("  Landing:    (%.1f, %.1f)m\n", t.Landing.X, t.Landing.Y)
	}
	fmt.Println("\nResult:")
	fmt.Printf("  Outcome:    %s\n", res.Outcome)
	fmt.Printf("  Runs:       %d\n", res.Runs)
	fmt.Printf("  Boundary:   %v\n", res.IsBoundary)
	fmt.Printf("  Aerial:     %v\n", res.IsAerial)
	if res.Fielder != "" {
		fmt.Printf("  Fielder:    %s\n", res.Fielder)
	}
	fmt.Printf("\n  %s\n", res.Description)
	fmt.Println(rule + "\n")
}

func runDistribution(sim *engine.Simulator, in engine.Input, opts options) {
	outcomes := make(map[engine.Outcome]int)
	for i := 0; i < opts.iterations; i++ {
		res := sim.SimulateDelivery(in)
		outcomes[res.Outcome]++
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{
			"iterations": opts.iterations,
			"outcomes":   outcomes,
		})
		return
	}

	type row struct {
		outcome engine.Outcome
		count   int
	}
	rows := make([]row, 0, len(outcomes))
	for o, n := range outcomes {
		rows = append(rows, row{o, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].outcome < rows[j].outcome
	})

	fmt.Printf("\nDistribution over %d iterations:\n", opts.iterations)
	fmt.Println(strings.Repeat("-", 40))
	for _, r := range rows {
		pct := float64(r.count) / float64(opts.iterations) * 100
		bar := strings.Repeat("#", int(pct/2))
		fmt.Printf("  %-8s %4d (%5.1f%%) %s\n", r.outcome, r.count, pct, bar)
	}
	fmt.Println()
}
