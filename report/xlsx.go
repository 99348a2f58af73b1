// Package report exports the derived hierarchy and ontology as an XLSX
// workbook for review outside the pipeline.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roastland/HnV-software-knowledge-analysis/graph"
	"github.com/roastland/HnV-software-knowledge-analysis/hierarchy"
)

const (
	hierarchySheet = "Hierarchy"
	ontologySheet  = "Ontology"
)

// WriteWorkbook writes a two-sheet workbook: one row per hierarchy method
// with its description, and one row per (relation, source label, target
// label) of the ontology.
func WriteWorkbook(path string, h hierarchy.Hierarchy, nodes map[string]*graph.Node, ontology map[string]map[graph.LabelPair]struct{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeHierarchySheet(f, h, nodes); err != nil {
		return err
	}
	if err := writeOntologySheet(f, ontology); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the hierarchy.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: deleting default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: saving workbook: %w", err)
	}
	return nil
}

func writeHierarchySheet(f *excelize.File, h hierarchy.Hierarchy, nodes map[string]*graph.Node) error {
	if _, err := f.NewSheet(hierarchySheet); err != nil {
		return fmt.Errorf("report: creating %s sheet: %w", hierarchySheet, err)
	}
	if err := setRow(f, hierarchySheet, 1, []any{"Package", "Class", "Method", "Description"}); err != nil {
		return err
	}

	row := 2
	for _, pkg := range h.Packages() {
		for _, cls := range h.Classes(pkg) {
			for _, met := range h.Methods(pkg, cls) {
				if err := setRow(f, hierarchySheet, row, []any{pkg, cls, met, description(nodes, met)}); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

func writeOntologySheet(f *excelize.File, ontology map[string]map[graph.LabelPair]struct{}) error {
	if _, err := f.NewSheet(ontologySheet); err != nil {
		return fmt.Errorf("report: creating %s sheet: %w", ontologySheet, err)
	}
	if err := setRow(f, ontologySheet, 1, []any{"Relation", "Source Label", "Target Label"}); err != nil {
		return err
	}

	relations := make([]string, 0, len(ontology))
	for rel := range ontology {
		relations = append(relations, rel)
	}
	slices.Sort(relations)

	row := 2
	for _, rel := range relations {
		pairs := make([]graph.LabelPair, 0, len(ontology[rel]))
		for p := range ontology[rel] {
			pairs = append(pairs, p)
		}
		slices.SortFunc(pairs, func(a, b graph.LabelPair) int {
			if c := strings.Compare(a.Source, b.Source); c != 0 {
				return c
			}
			return strings.Compare(a.Target, b.Target)
		})
		for _, p := range pairs {
			if err := setRow(f, ontologySheet, row, []any{rel, p.Source, p.Target}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report: cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("report: writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func description(nodes map[string]*graph.Node, id string) string {
	n, ok := nodes[id]
	if !ok || n.Properties == nil {
		return ""
	}
	if desc, ok := n.Properties["description"].(string); ok {
		return desc
	}
	return ""
}
