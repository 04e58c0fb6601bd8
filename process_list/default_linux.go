//go:build linux

package process_list

import (
	"proclist/process"
	"proclist/process_linux"
)

func defaultSnapshotter() process.Snapshotter {
	return process_linux.NewSnapshotter()
}
