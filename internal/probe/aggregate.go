package probe

import "net/netip"

// Displayed when the socket table gives no owning process, which is common
// without elevated privileges.
const UnknownProcess = "<UNKNOWN>"

// ifaceDelta is the change in one interface's byte counters between samples.
type ifaceDelta struct {
	up   uint64
	down uint64
}

// splitDelta gives each of n connections an even share of an interface's
// byte delta. Remainders are dropped rather than handed to an arbitrary
// connection.
func splitDelta(d ifaceDelta, n int) ifaceDelta {
	if n <= 0 {
		return ifaceDelta{}
	}
	return ifaceDelta{up: d.up / uint64(n), down: d.down / uint64(n)}
}

// Aggregate derives the per-process and per-remote-address views from the
// connection table. Connection counts are live connections; bytes and rates
// sum the member connections'.
func Aggregate(conns map[Connection]*ConnectionData) (map[string]*ProcessData, map[netip.Addr]*AddressData) {
	procs := map[string]*ProcessData{}
	remotes := map[netip.Addr]*AddressData{}

	for conn, data := range conns {
		name := data.ProcessName
		if name == "" {
			name = UnknownProcess
		}
		p := procs[name]
		if p == nil {
			p = &ProcessData{}
			procs[name] = p
		}
		p.BytesUploaded += data.BytesUploaded
		p.BytesDownloaded += data.BytesDownloaded
		p.UpRate += data.UpRate
		p.DownRate += data.DownRate
		p.ConnectionCount++

		addr := conn.Remote.Addr()
		r := remotes[addr]
		if r == nil {
			r = &AddressData{}
			remotes[addr] = r
		}
		r.BytesUploaded += data.BytesUploaded
		r.BytesDownloaded += data.BytesDownloaded
		r.UpRate += data.UpRate
		r.DownRate += data.DownRate
		r.ConnectionCount++
	}

	return procs, remotes
}
