// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"encoding/binary"
	"net"

	"github.com/ethereum/go-ethereum/p2p/netutil"
)

// ranges not covered by netutil.IsLAN / IsSpecialNetwork:
// shared address space, link-local and the reserved class E block.
var extraReserved = mustParseNetlist("100.64.0.0/10, 169.254.0.0/16, 240.0.0.0/4")

func mustParseNetlist(s string) *netutil.Netlist {
	l, err := netutil.ParseNetlist(s)
	if err != nil {
		panic(err)
	}
	return l
}

// IPv4 converts the packed representation into a net.IP.
func IPv4(packed uint32) net.IP {
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, packed)
	return ip
}

// PackIPv4 converts a dotted IPv4 address into its packed form.
// ok is false for non IPv4 input.
func PackIPv4(ip net.IP) (packed uint32, ok bool) {
	v4 := ip.To4()
	if v4 == nil {
		return 0, false
	}
	return binary.BigEndian.Uint32(v4), true
}

// IsRoutable reports whether the packed IPv4 address may be announced.
// Loopback, private, link-local, multicast and other reserved ranges are rejected.
func IsRoutable(packed uint32) bool {
	ip := IPv4(packed)
	switch {
	case ip.IsUnspecified(), ip.IsLoopback(), ip.IsPrivate(), ip.IsLinkLocalUnicast():
		return false
	case netutil.IsLAN(ip), netutil.IsSpecialNetwork(ip):
		return false
	case extraReserved.Contains(ip):
		return false
	}
	return true
}
