package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"proclist/process"
	"proclist/table"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

func writeEntries(w io.Writer, format outputFormat, entries []process.ProcessEntry) error {
	if entries == nil {
		entries = []process.ProcessEntry{}
	}

	switch format {
	case formatJSON:
		return writeJSON(w, entries)
	case formatYAML:
		return writeYAML(w, entries)
	}

	t := table.New(
		table.Column{Header: "PID", AlignRight: true},
		table.Column{Header: "PPID", AlignRight: true},
		table.Column{Header: "THREADS", AlignRight: true},
		table.Column{Header: "PRI", AlignRight: true},
		table.Column{Header: "NAME"},
	)

	threads := 0
	for _, e := range entries {
		t.AddRow(
			strconv.Itoa(int(e.PID)),
			strconv.Itoa(int(e.PPID)),
			strconv.Itoa(e.Threads),
			strconv.Itoa(e.PriorityBase),
			e.Name,
		)
		threads += e.Threads
	}

	if err := t.Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s processes, %s threads\n",
		humanize.Comma(int64(len(entries))), humanize.Comma(int64(threads)))
	return err
}

func writeTree(w io.Writer, format outputFormat, root *process.ProcessTreeNode) error {
	switch format {
	case formatJSON:
		return writeJSON(w, root)
	case formatYAML:
		return writeYAML(w, root)
	}
	return writeTreeNode(w, root, 0)
}

func writeTreeNode(w io.Writer, node *process.ProcessTreeNode, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%d %s\n", strings.Repeat("  ", depth), node.Process.PID, node.Process.Name); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := writeTreeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
