package probe

import "strings"

type IfaceKind int

const (
	IfaceUnknown IfaceKind = iota
	IfaceLoopback
	IfaceDockerBridge
	IfaceLinuxBridge
	IfaceVeth
	IfaceTunTap
	IfaceVirt
	IfacePhysical
)

func ClassifyIface(name string) IfaceKind {
	switch {
	case name == "lo" || strings.HasPrefix(name, "lo"):
		return IfaceLoopback
	case name == "docker0" || strings.HasPrefix(name, "docker"):
		return IfaceDockerBridge
	case strings.HasPrefix(name, "br-") || name == "virbr0" || strings.HasPrefix(name, "virbr"):
		return IfaceLinuxBridge
	case strings.HasPrefix(name, "veth"):
		return IfaceVeth
	case strings.HasPrefix(name, "tun") || strings.HasPrefix(name, "tap"):
		return IfaceTunTap
	case strings.HasPrefix(name, "wg"):
		return IfaceVirt
	case strings.HasPrefix(name, "en") || strings.HasPrefix(name, "eth") || strings.HasPrefix(name, "wl"):
		return IfacePhysical
	default:
		return IfaceUnknown
	}
}

// InterfaceFilter decides which interfaces contribute byte counters to the
// dashboard. An explicit name list wins; otherwise loopback and the usual
// container plumbing are skipped unless all is set.
type InterfaceFilter struct {
	names map[string]bool
	all   bool
}

func NewInterfaceFilter(names []string, all bool) *InterfaceFilter {
	f := &InterfaceFilter{all: all}
	if len(names) > 0 {
		f.names = make(map[string]bool, len(names))
		for _, n := range names {
			f.names[n] = true
		}
	}
	return f
}

func (f *InterfaceFilter) Allow(name string) bool {
	if f == nil {
		return true
	}
	if f.names != nil {
		return f.names[name]
	}
	if f.all {
		return true
	}
	switch ClassifyIface(name) {
	case IfaceLoopback, IfaceDockerBridge, IfaceLinuxBridge, IfaceVeth:
		return false
	}
	return true
}
