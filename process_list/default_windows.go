//go:build windows

package process_list

import (
	"proclist/process"
	"proclist/process_windows"
)

func defaultSnapshotter() process.Snapshotter {
	return process_windows.NewSnapshotter()
}
