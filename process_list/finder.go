package process_list

import (
	"fmt"
	"regexp"

	"proclist/process"
)

// Finder implements process.ProcessFinder on top of a List. Each call takes
// its own snapshot.
type Finder struct {
	list *List
}

// NewProcessFinder creates a Finder using the given List, or a default one if list is nil.
func NewProcessFinder(list *List) process.ProcessFinder {
	if list == nil {
		list = New()
	}
	return &Finder{list: list}
}

// FindProcess finds a process by name and returns its PID
func FindProcess(name string) (process.ProcessID, error) {
	processes, err := NewProcessFinder(nil).FindProcessByName(name)
	if err != nil {
		return 0, err
	}
	if len(processes) == 0 {
		return 0, fmt.Errorf("no process found with name '%s': %w", name, process.ErrProcessNotFound)
	}
	return processes[0].PID, nil
}

// FindProcessByPID finds a process by its PID. Enumeration stops at the first match.
func (f *Finder) FindProcessByPID(pid process.ProcessID) (*process.ProcessEntry, error) {
	for entry, err := range f.list.All() {
		if err != nil {
			return nil, err
		}
		if entry.PID == pid {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("process with PID %d: %w", pid, process.ErrProcessNotFound)
}

// FindProcessByName finds processes by their name (exact match)
func (f *Finder) FindProcessByName(name string) ([]process.ProcessEntry, error) {
	if name == "" {
		return nil, process.ErrEmptyName
	}
	return f.filter(func(entry process.ProcessEntry) bool {
		return entry.Name == name
	})
}

// FindProcessByNamePattern finds processes by their name (pattern match)
func (f *Finder) FindProcessByNamePattern(pattern string) ([]process.ProcessEntry, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return f.filter(func(entry process.ProcessEntry) bool {
		return re.MatchString(entry.Name)
	})
}

// FindAllProcesses returns every process in one snapshot
func (f *Finder) FindAllProcesses() ([]process.ProcessEntry, error) {
	return f.list.Collect()
}

func (f *Finder) filter(match func(process.ProcessEntry) bool) ([]process.ProcessEntry, error) {
	var results []process.ProcessEntry
	for entry, err := range f.list.All() {
		if err != nil {
			return nil, err
		}
		if match(entry) {
			results = append(results, entry)
		}
	}
	return results, nil
}

// FindChildProcesses finds all child processes of a given PID
func (f *Finder) FindChildProcesses(parentPID process.ProcessID) ([]process.ProcessEntry, error) {
	return f.filter(func(entry process.ProcessEntry) bool {
		return entry.PPID == parentPID && entry.PID != parentPID
	})
}

// FindDescendantProcesses finds all descendant processes (children, grandchildren, etc.) of a given PID
func (f *Finder) FindDescendantProcesses(rootPID process.ProcessID) ([]process.ProcessEntry, error) {
	all, err := f.list.Collect()
	if err != nil {
		return nil, err
	}
	childrenMap, processMap := indexProcesses(all)

	// Breadth-first; visited guards against PID reuse cycles
	var descendants []process.ProcessEntry
	queue := append([]process.ProcessID(nil), childrenMap[rootPID]...)
	visited := map[process.ProcessID]bool{rootPID: true}

	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]

		if visited[pid] {
			continue
		}
		visited[pid] = true

		if proc, exists := processMap[pid]; exists {
			descendants = append(descendants, proc)
			queue = append(queue, childrenMap[pid]...)
		}
	}

	return descendants, nil
}

// GetProcessTree returns a tree-like representation of processes starting from a root PID
func (f *Finder) GetProcessTree(rootPID process.ProcessID) (*process.ProcessTreeNode, error) {
	all, err := f.list.Collect()
	if err != nil {
		return nil, err
	}
	childrenMap, processMap := indexProcesses(all)

	root, exists := processMap[rootPID]
	if !exists {
		return nil, fmt.Errorf("process with PID %d: %w", rootPID, process.ErrProcessNotFound)
	}

	return buildProcessTree(root, childrenMap, processMap, map[process.ProcessID]bool{}), nil
}

// indexProcesses maps each parent PID to its children, in snapshot order, and each PID to its entry.
func indexProcesses(all []process.ProcessEntry) (map[process.ProcessID][]process.ProcessID, map[process.ProcessID]process.ProcessEntry) {
	childrenMap := make(map[process.ProcessID][]process.ProcessID)
	processMap := make(map[process.ProcessID]process.ProcessEntry, len(all))

	for _, proc := range all {
		processMap[proc.PID] = proc
		// The idle process on Windows reports itself as its own parent
		if proc.PPID != proc.PID {
			childrenMap[proc.PPID] = append(childrenMap[proc.PPID], proc.PID)
		}
	}
	return childrenMap, processMap
}

func buildProcessTree(entry process.ProcessEntry, childrenMap map[process.ProcessID][]process.ProcessID, processMap map[process.ProcessID]process.ProcessEntry, visited map[process.ProcessID]bool) *process.ProcessTreeNode {
	visited[entry.PID] = true
	node := &process.ProcessTreeNode{
		Process:  entry,
		Children: []*process.ProcessTreeNode{},
	}

	for _, childPID := range childrenMap[entry.PID] {
		if visited[childPID] {
			continue
		}
		if child, exists := processMap[childPID]; exists {
			node.Children = append(node.Children, buildProcessTree(child, childrenMap, processMap, visited))
		}
	}

	return node
}
