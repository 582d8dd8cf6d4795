// Command autotrig reads a VMF level, finds surfaces matching the given
// material filters, and writes a copy of the level with trigger_multiple
// volumes generated over every walkable matching surface.
//
// Run with only an input file to list the materials the map uses:
//
//	autotrig de_example.vmf
//
// Then generate:
//
//	autotrig -materials dev,measure -offset 4 -o out.vmf de_example.vmf
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/chazu/autotrig/pkg/brush"
	"github.com/chazu/autotrig/pkg/rules"
	"github.com/chazu/autotrig/pkg/trigger"
	"github.com/chazu/autotrig/pkg/vmf"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("autotrig: ")

	var (
		output     = flag.String("o", "", "output path (default <input>_triggers.vmf)")
		materials  = flag.String("materials", "", "comma-separated material substrings to match")
		offset     = flag.Float64("offset", 0, "extrusion distance in units (default 4)")
		categories = flag.String("categories", "", "comma-separated surface categories (default all but wall)")
		prefix     = flag.String("prefix", "", "targetname prefix for generated triggers")
		upwardOnly = flag.Bool("upward-only", false, "skip ceiling-side surfaces")
		configPath = flag.String("config", "", "YAML options file")
		rulesPath  = flag.String("rules", "", "zygomys eligibility script")
		verbose    = flag.Bool("v", false, "per-face diagnostics")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: autotrig [flags] <map.vmf>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	text, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	opts, err := buildOptions(*configPath, *materials, *offset, *categories, *prefix, *upwardOnly)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(opts.Materials) == 0 {
		listMaterials(string(text))
		return
	}

	if *rulesPath != "" {
		script, err := os.ReadFile(*rulesPath)
		if err != nil {
			log.Fatalf("read rules script: %v", err)
		}
		filter, err := rules.Load(string(script))
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer filter.Close()
		opts.Rules = filter
	}

	opts.Verbose = *verbose

	out, stats, err := trigger.Generate(string(text), opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	dest := *output
	if dest == "" {
		dest = strings.TrimSuffix(input, ".vmf") + "_triggers.vmf"
	}
	if err := vmf.WriteTextFile(dest, out); err != nil {
		log.Fatalf("%v", err)
	}

	printStats(stats, dest)
	if stats.Triggers == 0 {
		log.Printf("warning: no triggers were generated; check the material filters")
	}
}

// buildOptions layers command line flags over an optional YAML config.
func buildOptions(configPath, materials string, offset float64, categories, prefix string, upwardOnly bool) (trigger.Options, error) {
	var opts trigger.Options
	if configPath != "" {
		cfg, err := trigger.LoadConfig(configPath)
		if err != nil {
			return trigger.Options{}, err
		}
		opts, err = cfg.Options()
		if err != nil {
			return trigger.Options{}, err
		}
	}
	if materials != "" {
		opts.Materials = splitList(materials)
	}
	if offset != 0 {
		opts.Offset = offset
	}
	if prefix != "" {
		opts.Prefix = prefix
	}
	if upwardOnly {
		opts.UpwardOnly = true
	}
	if categories != "" {
		opts.Categories = make(map[brush.SurfaceCategory]bool)
		for _, name := range splitList(categories) {
			cat, err := brush.ParseCategory(name)
			if err != nil {
				return trigger.Options{}, err
			}
			opts.Categories[cat] = true
		}
	}
	return opts, nil
}

// listMaterials prints every material in the map, for picking filters.
func listMaterials(text string) {
	root, err := vmf.ParseString(text)
	if err != nil {
		log.Fatalf("%v", err)
	}
	solids := brush.CollectSolids(root)
	mats := brush.Materials(solids)
	fmt.Printf("%d solids, %d unique materials:\n", len(solids), len(mats))
	for _, m := range mats {
		fmt.Printf("  %s\n", m)
	}
	fmt.Println("\nrerun with -materials <substring,...> to generate triggers")
}

func printStats(s *trigger.Stats, dest string) {
	fmt.Printf("solids parsed:        %d\n", s.Solids)
	fmt.Printf("faces seen:           %d\n", s.Faces)
	fmt.Printf("material matches:     %d\n", s.Matched)
	fmt.Printf("walls skipped:        %d\n", s.Walls)
	fmt.Printf("unrecoverable faces:  %d\n", s.Unrecoverable)
	fmt.Printf("degenerate skipped:   %d\n", s.Degenerate)

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	fmt.Println("faces by category:")
	for _, c := range cats {
		fmt.Printf("  %-22s %d\n", c, s.ByCategory[c])
	}

	fmt.Printf("triggers generated:   %d\n", s.Triggers)
	fmt.Printf("output written to:    %s\n", dest)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
