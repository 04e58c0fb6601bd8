package process

import "fmt"

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessEntry is one record of a process table snapshot.
// It is decoded once from the raw OS record and never changes afterwards.
type ProcessEntry struct {
	PID          ProcessID `json:"pid" yaml:"pid"`                     // Process ID
	PPID         ProcessID `json:"ppid" yaml:"ppid"`                   // Parent Process ID at snapshot time
	Name         string    `json:"name" yaml:"name"`                   // Executable name (no directory)
	Threads      int       `json:"threads" yaml:"threads"`             // Number of threads
	PriorityBase int       `json:"priority_base" yaml:"priority_base"` // Base scheduling priority
}

func (pe ProcessEntry) String() string {
	return fmt.Sprintf("%s (pid %d, ppid %d)", pe.Name, pe.PID, pe.PPID)
}

// ProcessTreeNode represents a node in a process tree
type ProcessTreeNode struct {
	Process  ProcessEntry       `json:"process" yaml:"process"`
	Children []*ProcessTreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}
