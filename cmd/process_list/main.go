package main

import (
	"fmt"
	"io"
	"os"

	"proclist/process"
	"proclist/process_list"
	"proclist/process_portable"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/spf13/cobra"
)

type options struct {
	name     string
	pattern  string
	pid      int
	children int
	treeRoot int
	output   string
	backend  string
	verbose  bool

	// PID 0 is a real process, so these record whether the flag was given
	hasPID      bool
	hasChildren bool
	hasTree     bool
}

func main() {
	if err := newRootCommand(os.Stdout, nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command. sys overrides the snapshot backend when non-nil.
func newRootCommand(out io.Writer, sys process.Snapshotter) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "process_list",
		Short:        "List the processes of one process table snapshot",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasPID = cmd.Flags().Changed("pid")
			opts.hasChildren = cmd.Flags().Changed("children")
			opts.hasTree = cmd.Flags().Changed("tree")
			return run(out, opts, sys)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "Only list processes with this exact name")
	flags.StringVar(&opts.pattern, "pattern", "", "Only list processes whose name matches this regular expression")
	flags.IntVar(&opts.pid, "pid", 0, "Only list the process with this PID")
	flags.IntVar(&opts.children, "children", 0, "Only list the children of this PID")
	flags.IntVar(&opts.treeRoot, "tree", 0, "Print the process tree rooted at this PID")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format: table, json or yaml")
	flags.StringVar(&opts.backend, "backend", "native", "Snapshot backend: native or portable")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress")

	cmd.MarkFlagsMutuallyExclusive("name", "pattern", "pid", "children", "tree")

	return cmd
}

func run(out io.Writer, opts *options, sys process.Snapshotter) error {
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process_list"))

	format, err := parseFormat(opts.output)
	if err != nil {
		return err
	}

	listOpts := []process_list.Option{process_list.WithLogger(log)}
	switch {
	case sys != nil:
		listOpts = append(listOpts, process_list.WithSnapshotter(sys))
	case opts.backend == "portable":
		listOpts = append(listOpts, process_list.WithSnapshotter(process_portable.NewSnapshotter()))
	case opts.backend != "native":
		return fmt.Errorf("unknown backend %q", opts.backend)
	}

	finder := process_list.NewProcessFinder(process_list.New(listOpts...))

	if opts.hasTree {
		if opts.verbose {
			log.Infoln("Building process tree for pid", opts.treeRoot)
		}
		tree, err := finder.GetProcessTree(process.ProcessID(opts.treeRoot))
		if err != nil {
			return err
		}
		return writeTree(out, format, tree)
	}

	var entries []process.ProcessEntry
	switch {
	case opts.name != "":
		entries, err = finder.FindProcessByName(opts.name)
	case opts.pattern != "":
		entries, err = finder.FindProcessByNamePattern(opts.pattern)
	case opts.hasPID:
		var entry *process.ProcessEntry
		if entry, err = finder.FindProcessByPID(process.ProcessID(opts.pid)); err == nil {
			entries = []process.ProcessEntry{*entry}
		}
	case opts.hasChildren:
		entries, err = finder.FindChildProcesses(process.ProcessID(opts.children))
	default:
		entries, err = finder.FindAllProcesses()
	}
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Infoln("Snapshot matched", len(entries), "processes")
	}
	return writeEntries(out, format, entries)
}
