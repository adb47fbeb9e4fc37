//go:build !unix

package executor

import "os"

func signalTag(*os.ProcessState) string {
	return ""
}
