package probe

import (
	"net/netip"
	"syscall"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// liveConn is one row of the kernel socket table with its owning process.
type liveConn struct {
	Conn        Connection
	PID         int32
	ProcessName string
}

func connProto(c gnet.ConnectionStat) string {
	switch c.Type {
	case syscall.SOCK_STREAM:
		return "tcp"
	case syscall.SOCK_DGRAM:
		return "udp"
	default:
		return ""
	}
}

// isActive keeps sockets that can actually carry traffic: established TCP
// pairs, and UDP sockets with a remote endpoint set.
func isActive(c gnet.ConnectionStat) bool {
	switch c.Type {
	case syscall.SOCK_STREAM:
		return c.Status == "ESTABLISHED"
	case syscall.SOCK_DGRAM:
		return c.Raddr.Port != 0
	}
	return false
}

func parseAddrPort(a gnet.Addr) (netip.AddrPort, bool) {
	ip, err := netip.ParseAddr(a.IP)
	if err != nil {
		return netip.AddrPort{}, false
	}
	return netip.AddrPortFrom(ip.Unmap(), uint16(a.Port)), true
}

func liveConnections() ([]liveConn, error) {
	stats, err := gnet.Connections("inet")
	if err != nil {
		return nil, err
	}

	// Best-effort process names (may require privileges depending on OS);
	// one lookup per PID, not per socket.
	names := map[int32]string{}

	out := make([]liveConn, 0, len(stats))
	for _, c := range stats {
		proto := connProto(c)
		if proto == "" || !isActive(c) {
			continue
		}
		local, ok := parseAddrPort(c.Laddr)
		if !ok {
			continue
		}
		remote, ok := parseAddrPort(c.Raddr)
		if !ok {
			continue
		}

		lc := liveConn{
			Conn: Connection{Proto: proto, Local: local, Remote: remote},
			PID:  c.Pid,
		}
		if c.Pid > 0 {
			name, seen := names[c.Pid]
			if !seen {
				if p, e := process.NewProcess(c.Pid); e == nil {
					if n, e2 := p.Name(); e2 == nil {
						name = n
					}
				}
				names[c.Pid] = name
			}
			lc.ProcessName = name
		}
		out = append(out, lc)
	}
	return out, nil
}
