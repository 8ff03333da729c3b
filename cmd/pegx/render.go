package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ava12/pegx/tree"
)

const maxCellText = 32

type nodeDoc struct {
	Rule     string     `json:"rule" yaml:"rule"`
	Start    int        `json:"start" yaml:"start"`
	End      int        `json:"end" yaml:"end"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*nodeDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

type fileDoc struct {
	File string   `json:"file" yaml:"file"`
	Tree *nodeDoc `json:"tree" yaml:"tree"`
}

// newNodeDoc converts parse tree, only leaves carry text.
func newNodeDoc(n *tree.Node) *nodeDoc {
	d := &nodeDoc{Rule: n.Rule, Start: n.Start, End: n.End}
	if len(n.Children) == 0 {
		d.Text = n.Text()
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, newNodeDoc(c))
	}
	return d
}

func fileDocs(results []result) []fileDoc {
	docs := make([]fileDoc, 0, len(results))
	for _, r := range results {
		docs = append(docs, fileDoc{File: r.name, Tree: newNodeDoc(r.root)})
	}
	return docs
}

// render writes parse trees of successful results in given format.
func render(w io.Writer, format string, results []result) error {
	switch format {
	case "text":
		return renderText(w, results)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fileDocs(results))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fileDocs(results)); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		renderTable(w, results)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderText(w io.Writer, results []result) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", r.name)
		}
		if err := tree.Format(w, r.root); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, results []result) {
	var data [][]string
	for _, r := range results {
		for n := range r.root.All() {
			pos := n.Pos()
			data = append(data, []string{
				r.name,
				strings.Repeat("  ", tree.NodeLevel(n)) + n.Rule,
				fmt.Sprintf("%d..%d", n.Start, n.End),
				fmt.Sprintf("%d:%d", pos.Line(), pos.Col()),
				cellText(n.Text()),
			})
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"FILE", "RULE", "SPAN", "POS", "TEXT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

// cellText quotes text, cutting it to maxCellText runes.
func cellText(text string) string {
	runes := []rune(text)
	if len(runes) > maxCellText {
		return fmt.Sprintf("%q...", string(runes[:maxCellText]))
	}
	return fmt.Sprintf("%q", text)
}
