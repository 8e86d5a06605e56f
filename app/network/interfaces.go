package network

import "net"

// Interface is one entry of the host interface table, reduced to what the
// resolver needs.
type Interface struct {
	Name      string
	Loopback  bool
	Addresses []net.IP
}

type InterfaceSource interface {
	Interfaces() ([]Interface, error)
}

// SystemInterfaces reads the live interface table of the host.
type SystemInterfaces struct{}

func (SystemInterfaces) Interfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	items := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		item := Interface{
			Name:     iface.Name,
			Loopback: iface.Flags&net.FlagLoopback != 0,
		}
		for _, addr := range addrs {
			switch v := addr.(type) {
			case *net.IPNet:
				item.Addresses = append(item.Addresses, v.IP)
			case *net.IPAddr:
				item.Addresses = append(item.Addresses, v.IP)
			}
		}
		items = append(items, item)
	}

	return items, nil
}

// StaticInterfaces serves a fixed table.
type StaticInterfaces []Interface

func (s StaticInterfaces) Interfaces() ([]Interface, error) {
	return s, nil
}
