package process

// ProcessFinder defines operations for discovering processes and their relationships.
// Every call works on a fresh point-in-time snapshot of the process table.
type ProcessFinder interface {
	// FindProcessByPID finds a process by its PID
	FindProcessByPID(pid ProcessID) (*ProcessEntry, error)

	// FindProcessByName finds processes by their name (exact match)
	FindProcessByName(name string) ([]ProcessEntry, error)

	// FindProcessByNamePattern finds processes by their name (pattern match)
	FindProcessByNamePattern(pattern string) ([]ProcessEntry, error)

	// FindAllProcesses returns every process present in the snapshot
	FindAllProcesses() ([]ProcessEntry, error)

	// Process hierarchy operations
	ProcessHierarchy
}

// ProcessHierarchy defines operations for working with process relationships
type ProcessHierarchy interface {
	// FindChildProcesses finds all child processes of a given PID
	FindChildProcesses(parentPID ProcessID) ([]ProcessEntry, error)

	// FindDescendantProcesses finds all descendant processes (children, grandchildren, etc.) of a given PID
	FindDescendantProcesses(rootPID ProcessID) ([]ProcessEntry, error)

	// GetProcessTree returns a tree-like representation of processes starting from a root PID
	GetProcessTree(rootPID ProcessID) (*ProcessTreeNode, error)
}
