package probe

import (
	"net/netip"
	"time"
)

// Connection identifies one socket pair from the kernel table.
type Connection struct {
	Proto  string
	Local  netip.AddrPort
	Remote netip.AddrPort
}

// ConnectionData is the bandwidth record for one connection: lifetime byte
// counters, rates over the last sample window, and display metadata.
type ConnectionData struct {
	BytesUploaded   uint64
	BytesDownloaded uint64
	UpRate          float64
	DownRate        float64
	ProcessName     string
	InterfaceName   string
}

func (d *ConnectionData) TotalBytesUploaded() uint64   { return d.BytesUploaded }
func (d *ConnectionData) TotalBytesDownloaded() uint64 { return d.BytesDownloaded }

// ProcessData aggregates every live connection owned by one process name.
type ProcessData struct {
	BytesUploaded   uint64
	BytesDownloaded uint64
	UpRate          float64
	DownRate        float64
	ConnectionCount int
}

func (d *ProcessData) TotalBytesUploaded() uint64   { return d.BytesUploaded }
func (d *ProcessData) TotalBytesDownloaded() uint64 { return d.BytesDownloaded }

// AddressData aggregates every live connection to one remote address.
type AddressData struct {
	BytesUploaded   uint64
	BytesDownloaded uint64
	UpRate          float64
	DownRate        float64
	ConnectionCount int
}

func (d *AddressData) TotalBytesUploaded() uint64   { return d.BytesUploaded }
func (d *AddressData) TotalBytesDownloaded() uint64 { return d.BytesDownloaded }

// Snapshot is one read-only view of the monitored state. The sampler hands
// out fresh copies every tick, so callers may hold a snapshot across frames
// without observing later mutation.
type Snapshot struct {
	Hostname string
	Uptime   time.Duration

	Connections     map[Connection]*ConnectionData
	Processes       map[string]*ProcessData
	RemoteAddresses map[netip.Addr]*AddressData

	TotalUploaded   uint64
	TotalDownloaded uint64
	TotalUpRate     float64
	TotalDownRate   float64

	TakenAt time.Time
}
