// Command validate_data sanity-checks the JSON data files against each other:
// every interaction side should resolve to a catalog medicine or a declared
// interaction group, curated alternatives must exist, and barcodes must be
// unique. Run from the repo root:
//
//	go run ./scripts/validate_data.go [medicines.json] [interactions.json]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func main() {
	medicinesPath := "data/medicines.json"
	interactionsPath := "data/interactions.json"
	if len(os.Args) > 1 {
		medicinesPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		interactionsPath = os.Args[2]
	}

	log, err := logger.New("dev")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	store := catalog.Load(medicinesPath, log)
	interactions := catalog.LoadInteractions(interactionsPath, log)

	problems := 0
	report := func(format string, args ...interface{}) {
		problems++
		fmt.Printf("PROBLEM: "+format+"\n", args...)
	}

	if store.Len() == 0 {
		report("medicine catalog is empty (%s)", medicinesPath)
	}

	knownGroups := map[string]bool{}
	barcodes := map[string]string{}
	for _, m := range store.List() {
		if m.ID == "" || m.Name == "" {
			report("medicine with missing id or name: %+v", m)
		}
		for g := range m.Groups() {
			knownGroups[g] = true
		}
		if m.Barcode != "" {
			if prev, dup := barcodes[m.Barcode]; dup {
				report("barcode %s shared by %s and %s", m.Barcode, prev, m.ID)
			}
			barcodes[m.Barcode] = m.ID
		}
	}

	resolves := func(name, group string) bool {
		if name != "" {
			if _, ok := store.ByNameFuzzy(name); ok {
				return true
			}
			// Generic names are valid interaction terms too.
			for _, m := range store.List() {
				if strings.Contains(strings.ToLower(m.GenericName), strings.ToLower(name)) {
					return true
				}
			}
		}
		return group != "" && knownGroups[strings.ToLower(group)]
	}

	for _, in := range interactions.All() {
		if in.ID == "" {
			report("interaction with empty id: %+v", in)
		}
		if !resolves(in.DrugA, in.DrugAGroup) {
			report("interaction %s: side A (%q / group %q) matches nothing in the catalog", in.ID, in.DrugA, in.DrugAGroup)
		}
		if !resolves(in.DrugB, in.DrugBGroup) {
			report("interaction %s: side B (%q / group %q) matches nothing in the catalog", in.ID, in.DrugB, in.DrugBGroup)
		}
		switch in.Severity {
		case catalog.SeverityContraindicated, catalog.SeverityMajor, catalog.SeverityModerate, catalog.SeverityMinor:
		default:
			report("interaction %s: unknown severity %q", in.ID, in.Severity)
		}
		for _, alt := range in.Alternatives {
			if _, ok := store.ByName(alt); !ok {
				report("interaction %s: alternative %q not in catalog", in.ID, alt)
			}
		}
	}

	fmt.Printf("checked %d medicines, %d interactions, %d barcodes\n",
		store.Len(), len(interactions.All()), len(barcodes))
	if problems > 0 {
		fmt.Printf("%d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("data files look consistent")
}
