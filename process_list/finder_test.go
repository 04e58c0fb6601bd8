package process_list

import (
	"testing"

	"proclist/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A small Windows-like table: idle (its own parent), System, and two trees.
func finderTable() []process.ProcessEntry {
	return []process.ProcessEntry{
		{PID: 0, PPID: 0, Name: "[System Process]"},
		{PID: 4, PPID: 0, Name: "System"},
		{PID: 100, PPID: 4, Name: "smss.exe"},
		{PID: 200, PPID: 100, Name: "csrss.exe"},
		{PID: 300, PPID: 100, Name: "wininit.exe"},
		{PID: 400, PPID: 300, Name: "services.exe"},
		{PID: 500, PPID: 400, Name: "svchost.exe"},
		{PID: 501, PPID: 400, Name: "svchost.exe"},
		{PID: 900, PPID: 77, Name: "orphan.exe"},
	}
}

func newTestFinder(t *testing.T) (process.ProcessFinder, *fakeSnapshotter) {
	sys := newFake(finderTable()...)
	return NewProcessFinder(newTestList(t, sys)), sys
}

func pids(entries []process.ProcessEntry) []process.ProcessID {
	out := make([]process.ProcessID, len(entries))
	for i, e := range entries {
		out[i] = e.PID
	}
	return out
}

func TestFindProcessByPID(t *testing.T) {
	finder, sys := newTestFinder(t)

	found, err := finder.FindProcessByPID(300)
	require.NoError(t, err)
	assert.Equal(t, "wininit.exe", found.Name)
	assert.Equal(t, 0, sys.openHandles(), "early stop must release the snapshot")

	_, err = finder.FindProcessByPID(12345)
	assert.ErrorIs(t, err, process.ErrProcessNotFound)
}

func TestFindProcessByName(t *testing.T) {
	finder, _ := newTestFinder(t)

	found, err := finder.FindProcessByName("svchost.exe")
	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{500, 501}, pids(found))

	found, err = finder.FindProcessByName("SVCHOST.EXE")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = finder.FindProcessByName("")
	assert.ErrorIs(t, err, process.ErrEmptyName)
}

func TestFindProcessByNamePattern(t *testing.T) {
	finder, _ := newTestFinder(t)

	found, err := finder.FindProcessByNamePattern(`^s.*\.exe$`)
	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{100, 400, 500, 501}, pids(found))

	_, err = finder.FindProcessByNamePattern("(")
	assert.Error(t, err)
}

func TestFindAllProcesses(t *testing.T) {
	finder, sys := newTestFinder(t)

	all, err := finder.FindAllProcesses()
	require.NoError(t, err)
	assert.Equal(t, finderTable(), all)
	assert.Equal(t, 1, sys.creates)
}

func TestFindChildProcesses(t *testing.T) {
	finder, _ := newTestFinder(t)

	children, err := finder.FindChildProcesses(100)
	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{200, 300}, pids(children))

	// the idle process is not its own child
	children, err = finder.FindChildProcesses(0)
	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{4}, pids(children))
}

func TestFindDescendantProcesses(t *testing.T) {
	finder, _ := newTestFinder(t)

	descendants, err := finder.FindDescendantProcesses(100)
	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{200, 300, 400, 500, 501}, pids(descendants))

	descendants, err = finder.FindDescendantProcesses(501)
	require.NoError(t, err)
	assert.Empty(t, descendants)
}

func TestGetProcessTree(t *testing.T) {
	finder, _ := newTestFinder(t)

	tree, err := finder.GetProcessTree(0)
	require.NoError(t, err)
	assert.Equal(t, "[System Process]", tree.Process.Name)
	require.Len(t, tree.Children, 1)

	system := tree.Children[0]
	assert.Equal(t, process.ProcessID(4), system.Process.PID)
	require.Len(t, system.Children, 1)

	smss := system.Children[0]
	require.Len(t, smss.Children, 2)
	assert.Equal(t, process.ProcessID(300), smss.Children[1].Process.PID)
	assert.Len(t, smss.Children[1].Children[0].Children, 2)

	_, err = finder.GetProcessTree(77)
	assert.ErrorIs(t, err, process.ErrProcessNotFound)
}

func TestFinderPropagatesAcquireError(t *testing.T) {
	finder, sys := newTestFinder(t)
	sys.createErrs = []error{process.ErrnoAccessDenied}

	_, err := finder.FindAllProcesses()
	var acquireErr *AcquireError
	assert.ErrorAs(t, err, &acquireErr)
}
