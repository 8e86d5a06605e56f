package network

import "strings"

// NameDenylist holds case-insensitive fragments of virtual adapter names.
type NameDenylist []string

// PrefixDenylist holds dotted-quad prefixes of virtual or link-local subnets.
type PrefixDenylist []string

var DefaultNameDenylist = NameDenylist{
	"vmware",
	"virtualbox",
	"vbox",
	"hyper-v",
	"vethernet",
	"docker",
	"wsl",
	"vpn",
	"tunnel-adapter",
	"tun",
	"tap",
	"loopback",
	"bluetooth",
}

var DefaultPrefixDenylist = PrefixDenylist{
	"169.254.",
	"192.168.56.",
	"192.168.99.",
	"172.17.",
	"10.0.75.",
}

// Denies reports whether any fragment occurs in name. Entries are checked in order.
func (d NameDenylist) Denies(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range d {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func (d PrefixDenylist) Denies(address string) bool {
	for _, prefix := range d {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(address, prefix) {
			return true
		}
	}
	return false
}
