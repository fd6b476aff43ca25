// Package ipset issues membership commands against kernel-resident
// netfilter sets over raw netlink: add or remove an address entry, add a
// hardware-address entry, flush a set by name.
//
// Ownership boundary:
// - ipset wire constants and command builders
// - the netfilter control socket and its transient-send retry policy
// - the Client surface that classifies textual values and dispatches
//
// Commands are fire-and-forget datagrams; kernel replies are never read.
// Set creation, destruction and enumeration are out of scope.
package ipset
