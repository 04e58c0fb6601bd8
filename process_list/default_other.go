//go:build !windows && !linux

package process_list

import (
	"proclist/process"
	"proclist/process_portable"
)

func defaultSnapshotter() process.Snapshotter {
	return process_portable.NewSnapshotter()
}
