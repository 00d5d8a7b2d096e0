// Command registry-updater maintains the parking template registry file.
//
// Usage:
//
//	registry-updater -init -out configs/registry.json
//	registry-updater -validate configs/registry.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"parkassist/pkg/registry"
)

func main() {
	initOut := flag.String("out", "", "write the built-in registry to this path (with -init)")
	doInit := flag.Bool("init", false, "emit the built-in registry as a starting point")
	validatePath := flag.String("validate", "", "validate a registry file")
	flag.Parse()

	switch {
	case *doInit:
		if *initOut == "" {
			fatal("-init requires -out")
		}
		if err := writeDefault(*initOut); err != nil {
			fatal(err.Error())
		}
		fmt.Printf("wrote built-in registry to %s\n", *initOut)

	case *validatePath != "":
		if err := validate(*validatePath); err != nil {
			fatal(err.Error())
		}
		fmt.Printf("%s is valid\n", *validatePath)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func writeDefault(path string) error {
	reg := registry.Default()
	reg.LastUpdated = time.Now().UTC().Format("2006-01-02")

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func validate(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if reg.Version == "" {
		return fmt.Errorf("registry version is empty")
	}
	if len(reg.Templates) == 0 {
		return fmt.Errorf("registry has no templates")
	}

	seen := make(map[string]bool)
	for _, t := range reg.Templates {
		if t.ID == "" {
			return fmt.Errorf("template with empty id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true

		if t.HourlyRateMin < 0 || t.HourlyRateMax < t.HourlyRateMin {
			return fmt.Errorf("template %q has invalid rate bounds [%.2f, %.2f]", t.ID, t.HourlyRateMin, t.HourlyRateMax)
		}
		if len(t.Keywords) == 0 {
			return fmt.Errorf("template %q has no classifier keywords", t.ID)
		}
	}

	// The detail schema itself must compile.
	if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(reg.DetailSchema)); err != nil {
		return fmt.Errorf("detail schema does not compile: %w", err)
	}

	return nil
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "registry-updater: "+msg)
	os.Exit(1)
}
