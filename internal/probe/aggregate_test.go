package probe

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggConn(local, remote string) Connection {
	return Connection{
		Proto:  "tcp",
		Local:  netip.MustParseAddrPort(local),
		Remote: netip.MustParseAddrPort(remote),
	}
}

func TestAggregateGroupsByProcessAndRemote(t *testing.T) {
	conns := map[Connection]*ConnectionData{
		aggConn("10.0.0.2:1000", "1.1.1.1:443"): {
			BytesUploaded: 10, BytesDownloaded: 20, UpRate: 1, DownRate: 2,
			ProcessName: "curl",
		},
		aggConn("10.0.0.2:1001", "1.1.1.1:443"): {
			BytesUploaded: 30, BytesDownloaded: 40, UpRate: 3, DownRate: 4,
			ProcessName: "curl",
		},
		aggConn("10.0.0.2:1002", "8.8.8.8:53"): {
			BytesUploaded: 5, BytesDownloaded: 7,
			ProcessName: "dig",
		},
	}

	procs, remotes := Aggregate(conns)

	require.Len(t, procs, 2)
	curl := procs["curl"]
	require.NotNil(t, curl)
	assert.Equal(t, uint64(40), curl.BytesUploaded)
	assert.Equal(t, uint64(60), curl.BytesDownloaded)
	assert.Equal(t, 4.0, curl.UpRate)
	assert.Equal(t, 6.0, curl.DownRate)
	assert.Equal(t, 2, curl.ConnectionCount)

	require.Len(t, remotes, 2)
	one := remotes[netip.MustParseAddr("1.1.1.1")]
	require.NotNil(t, one)
	assert.Equal(t, uint64(40), one.BytesUploaded)
	assert.Equal(t, 2, one.ConnectionCount)

	dns := remotes[netip.MustParseAddr("8.8.8.8")]
	require.NotNil(t, dns)
	assert.Equal(t, 1, dns.ConnectionCount)
}

func TestAggregateUnknownProcessBucket(t *testing.T) {
	conns := map[Connection]*ConnectionData{
		aggConn("10.0.0.2:1000", "1.1.1.1:443"): {BytesUploaded: 1},
		aggConn("10.0.0.2:1001", "2.2.2.2:443"): {BytesUploaded: 2},
	}
	procs, _ := Aggregate(conns)
	require.Len(t, procs, 1)
	unknown := procs[UnknownProcess]
	require.NotNil(t, unknown)
	assert.Equal(t, 2, unknown.ConnectionCount)
	assert.Equal(t, uint64(3), unknown.BytesUploaded)
}

func TestAggregateEmpty(t *testing.T) {
	procs, remotes := Aggregate(nil)
	assert.Empty(t, procs)
	assert.Empty(t, remotes)
}

func TestSplitDelta(t *testing.T) {
	d := ifaceDelta{up: 100, down: 31}

	assert.Equal(t, ifaceDelta{up: 50, down: 15}, splitDelta(d, 2))
	assert.Equal(t, d, splitDelta(d, 1))
	assert.Equal(t, ifaceDelta{}, splitDelta(d, 0))
	assert.Equal(t, ifaceDelta{}, splitDelta(d, -1))

	// shares never exceed the interface total
	s := splitDelta(d, 3)
	assert.LessOrEqual(t, s.up*3, d.up)
	assert.LessOrEqual(t, s.down*3, d.down)
}
