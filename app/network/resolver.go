package network

import (
	"sort"
	"strings"

	"github.com/paulohenriquejustino/payment-gateway/app/factory"
	"github.com/sirupsen/logrus"
)

const Localhost = "localhost"

const (
	PriorityDefault       = 1
	PriorityWired         = 2
	PriorityPrimarySubnet = 3
)

var wiredNamePrefixes = []string{"eth", "en"}

type Candidate struct {
	Name     string
	Address  string
	Priority int
}

type ResolverConfig struct {
	NameDenylist   NameDenylist
	PrefixDenylist PrefixDenylist
	PrimarySubnet  string
}

// Resolver picks the address a developer would use to reach this host from
// another device on the LAN.
type Resolver struct {
	source        InterfaceSource
	names         NameDenylist
	prefixes      PrefixDenylist
	primarySubnet string
	logger        logrus.FieldLogger
}

func NewResolver(source InterfaceSource, cfg ResolverConfig) *Resolver {
	if source == nil {
		source = SystemInterfaces{}
	}
	names := cfg.NameDenylist
	if names == nil {
		names = DefaultNameDenylist
	}
	prefixes := cfg.PrefixDenylist
	if prefixes == nil {
		prefixes = DefaultPrefixDenylist
	}

	return &Resolver{
		source:        source,
		names:         names,
		prefixes:      prefixes,
		primarySubnet: strings.TrimSpace(cfg.PrimarySubnet),
		logger:        factory.NewModuleLogger("network-resolver"),
	}
}

// Resolve returns the best candidate address, or "localhost" when the table
// holds no usable address. It never fails.
func (r *Resolver) Resolve() string {
	candidates := r.Candidates()
	if len(candidates) == 0 {
		return Localhost
	}
	return candidates[0].Address
}

// Candidates returns the filtered addresses ordered by descending priority.
// Equal priorities keep discovery order.
func (r *Resolver) Candidates() []Candidate {
	ifaces, err := r.source.Interfaces()
	if err != nil {
		r.logger.WithError(err).Warn("Failed to enumerate network interfaces")
		return nil
	}

	candidates := make([]Candidate, 0)
	for _, iface := range ifaces {
		if iface.Loopback || r.names.Denies(iface.Name) {
			continue
		}
		for _, ip := range iface.Addresses {
			v4 := ip.To4()
			if v4 == nil || v4.IsLoopback() {
				continue
			}
			address := v4.String()
			if r.prefixes.Denies(address) {
				continue
			}
			candidates = append(candidates, Candidate{
				Name:     iface.Name,
				Address:  address,
				Priority: r.priority(iface.Name, address),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	return candidates
}

func (r *Resolver) priority(name, address string) int {
	if r.primarySubnet != "" && strings.HasPrefix(address, r.primarySubnet) {
		return PriorityPrimarySubnet
	}
	lower := strings.ToLower(name)
	for _, prefix := range wiredNamePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return PriorityWired
		}
	}
	return PriorityDefault
}
