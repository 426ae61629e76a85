package probe

import (
	"net"
	"net/netip"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/tcheinen/bandwhich/internal/logger"
)

// Connections that vanish from the socket table linger this long before
// their counters are dropped.
const pruneAfter = 5 * time.Second

// connState tracks one live connection across samples.
type connState struct {
	data     ConnectionData
	lastSeen time.Time
}

// Sampler turns kernel socket and interface counters into per-connection
// bandwidth snapshots. Byte deltas are read per interface and split evenly
// across the interface's live connections; exact per-flow accounting would
// need packet capture, which this tool avoids.
type Sampler struct {
	log    logger.Logger
	filter *InterfaceFilter

	lastIO map[string]gnet.IOCountersStat
	lastAt time.Time

	open      map[Connection]*connState
	totalUp   uint64
	totalDown uint64
}

func NewSampler(filter *InterfaceFilter, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		log:    log,
		filter: filter,
		lastIO: map[string]gnet.IOCountersStat{},
		open:   map[Connection]*connState{},
	}
}

func (s *Sampler) Sample() (Snapshot, error) {
	now := time.Now()

	hostName := ""
	uptime := time.Duration(0)
	if hi, err := host.Info(); err == nil && hi != nil {
		hostName = hi.Hostname
		uptime = time.Duration(hi.Uptime) * time.Second
	}

	conns, err := liveConnections()
	if err != nil {
		return Snapshot{}, err
	}

	ifaceByAddr, err := localInterfaces()
	if err != nil {
		return Snapshot{}, err
	}

	counters, err := gnet.IOCounters(true)
	if err != nil {
		return Snapshot{}, err
	}

	first := s.lastAt.IsZero()
	dt := now.Sub(s.lastAt).Seconds()
	if dt <= 0 {
		dt = 1
	}

	deltas := map[string]ifaceDelta{}
	curIO := make(map[string]gnet.IOCountersStat, len(counters))
	for _, c := range counters {
		curIO[c.Name] = c
		if first || !s.filter.Allow(c.Name) {
			continue
		}
		prev, ok := s.lastIO[c.Name]
		if !ok {
			continue
		}
		// counters can reset when an interface bounces
		var d ifaceDelta
		if c.BytesSent >= prev.BytesSent {
			d.up = c.BytesSent - prev.BytesSent
		}
		if c.BytesRecv >= prev.BytesRecv {
			d.down = c.BytesRecv - prev.BytesRecv
		}
		deltas[c.Name] = d
	}
	s.lastIO = curIO
	s.lastAt = now

	byIface := map[string][]Connection{}
	for _, lc := range conns {
		st := s.open[lc.Conn]
		if st == nil {
			st = &connState{}
			s.open[lc.Conn] = st
		}
		st.lastSeen = now
		st.data.UpRate, st.data.DownRate = 0, 0
		if lc.ProcessName != "" {
			st.data.ProcessName = lc.ProcessName
		}
		name := ifaceByAddr[lc.Conn.Local.Addr()]
		if name != "" {
			st.data.InterfaceName = name
			if s.filter.Allow(name) {
				byIface[name] = append(byIface[name], lc.Conn)
			}
		}
	}

	for name, members := range byIface {
		share := splitDelta(deltas[name], len(members))
		for _, conn := range members {
			st := s.open[conn]
			st.data.BytesUploaded += share.up
			st.data.BytesDownloaded += share.down
			st.data.UpRate = float64(share.up) / dt
			st.data.DownRate = float64(share.down) / dt
		}
	}

	var tickUp, tickDown uint64
	for _, d := range deltas {
		tickUp += d.up
		tickDown += d.down
	}
	s.totalUp += tickUp
	s.totalDown += tickDown

	for conn, st := range s.open {
		if now.Sub(st.lastSeen) > pruneAfter {
			delete(s.open, conn)
		}
	}

	connOut := make(map[Connection]*ConnectionData, len(s.open))
	for conn, st := range s.open {
		d := st.data
		connOut[conn] = &d
	}
	procs, remotes := Aggregate(connOut)

	s.log.Debug("sampled %d connections, %d procs, %d remotes", len(connOut), len(procs), len(remotes))

	return Snapshot{
		Hostname:        hostName,
		Uptime:          uptime,
		Connections:     connOut,
		Processes:       procs,
		RemoteAddresses: remotes,
		TotalUploaded:   s.totalUp,
		TotalDownloaded: s.totalDown,
		TotalUpRate:     float64(tickUp) / dt,
		TotalDownRate:   float64(tickDown) / dt,
		TakenAt:         now,
	}, nil
}

// localInterfaces maps local addresses to the interface that carries them,
// which is how connections get attached to an interface's byte counters.
func localInterfaces() (map[netip.Addr]string, error) {
	ifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := map[netip.Addr]string{}
	for _, nif := range ifs {
		addrs, err := nif.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipn, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			ip, ok := netip.AddrFromSlice(ipn.IP)
			if !ok {
				continue
			}
			out[ip.Unmap()] = nif.Name
		}
	}
	return out, nil
}
