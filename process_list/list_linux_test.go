//go:build linux

package process_list

import (
	"os"
	"path/filepath"
	"testing"

	"proclist/process"
	"proclist/process_linux"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireFailureKeepsHostErrno(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proc")
	require.NoError(t, os.WriteFile(root, nil, 0644))
	list := newTestList(t, process_linux.NewSnapshotterAt(root))

	it, err := list.Begin()
	assert.Nil(t, it)

	var acquireErr *AcquireError
	require.ErrorAs(t, err, &acquireErr)
	assert.NotZero(t, acquireErr.Status)
	assert.NotEqual(t, process.ErrnoBadLength, acquireErr.Status)
	assert.NotContains(t, err.Error(), "status 0")
}
