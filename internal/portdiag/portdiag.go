// Identify processes holding TCP ports, for friendlier bind errors.
package portdiag

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// ListenerOnPort returns a description of the process listening on the
// given TCP port, if one can be found. Process inspection is best
// effort and varies by platform, so failure reports false rather than
// an error.
func ListenerOnPort(port int) (string, bool) {
	processes, err := process.Processes()
	if err != nil {
		return "", false
	}
	for _, p := range processes {
		conns, err := p.Connections()
		if err != nil {
			continue
		}
		for _, conn := range conns {
			if conn.Status != "LISTEN" || conn.Laddr.Port != uint32(port) {
				continue
			}
			name, err := p.Name()
			if err != nil {
				name = "unknown"
			}
			return fmt.Sprintf("%s (pid %d)", name, p.Pid), true
		}
	}
	return "", false
}
