package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// The API and the legacy app share one contract: the JSON documents on disk.
// This tool diffs two data directories entity by entity so a migration can be
// verified before the legacy app is switched off.

type entity struct {
	Name     string
	Critical bool
}

var entities = []entity{
	{"users", true},
	{"courses", true},
	{"attendance", true},
	{"assignments", true},
	{"projects", true},
	{"submissions", true},
	{"certificates", true},
	{"announcements", false},
	{"departments", true},
	{"exams", false},
	{"subjects", false},
	{"exam_results", false},
}

type comparison struct {
	Entity  entity
	Match   bool
	Missing string
	Error   error
}

func main() {
	var (
		newDir    string
		legacyDir string
		only      string
	)

	flag.StringVar(&newDir, "new", "data", "API data directory")
	flag.StringVar(&legacyDir, "legacy", "", "legacy app data directory")
	flag.StringVar(&only, "only", "", "comma-separated entity names to check (default all)")
	flag.Parse()

	if legacyDir == "" {
		fmt.Fprintln(os.Stderr, "usage: datacheck -legacy <dir> [-new <dir>] [-only users,courses]")
		os.Exit(2)
	}

	selected := selectEntities(only)
	var (
		comparisons []comparison
		breaking    int
		optional    int
	)

	for _, e := range selected {
		comp := compareEntity(newDir, legacyDir, e)
		if comp.Error != nil || !comp.Match {
			if e.Critical {
				breaking++
			} else {
				optional++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func selectEntities(only string) []entity {
	if strings.TrimSpace(only) == "" {
		return entities
	}
	wanted := map[string]bool{}
	for _, name := range strings.Split(only, ",") {
		wanted[strings.TrimSpace(name)] = true
	}
	var selected []entity
	for _, e := range entities {
		if wanted[e.Name] {
			selected = append(selected, e)
		}
	}
	return selected
}

func compareEntity(newDir, legacyDir string, e entity) comparison {
	comp := comparison{Entity: e}

	newDoc, newErr := os.ReadFile(filepath.Join(newDir, e.Name+".json"))
	legacyDoc, legacyErr := os.ReadFile(filepath.Join(legacyDir, e.Name+".json"))

	switch {
	case os.IsNotExist(newErr) && os.IsNotExist(legacyErr):
		comp.Match = true
		return comp
	case os.IsNotExist(newErr):
		comp.Missing = "new"
		return comp
	case os.IsNotExist(legacyErr):
		comp.Missing = "legacy"
		return comp
	case newErr != nil:
		comp.Error = newErr
		return comp
	case legacyErr != nil:
		comp.Error = legacyErr
		return comp
	}

	match, err := documentsEqual(newDoc, legacyDoc)
	if err != nil {
		comp.Error = err
		return comp
	}
	comp.Match = match
	return comp
}

// documentsEqual compares after JSON normalization so indentation, key order
// and 60 vs 60.0 never count as drift.
func documentsEqual(a, b []byte) (bool, error) {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true, nil
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false, fmt.Errorf("parse new document: %w", err)
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false, fmt.Errorf("parse legacy document: %w", err)
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj), nil
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Data Parity Report")
	fmt.Println("==================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
		case res.Missing != "":
			status = "MISSING"
		case !res.Match:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s.json (critical: %t)\n", status, res.Entity.Name, res.Entity.Critical)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		}
		if res.Missing != "" {
			fmt.Printf("  Document missing on %s side\n", res.Missing)
		}
	}
}
