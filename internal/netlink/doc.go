// Package netlink builds raw netlink command buffers by hand: a
// capacity-checked append buffer, the nlmsghdr/nfgenmsg preamble, 4-byte
// aligned attributes, and nested attribute frames whose lengths are
// backpatched on close.
//
// Ownership boundary:
// - buffer and alignment primitives
// - message header and attribute encoding
// - attribute decode walk for verifying built messages
//
// Everything is encoded in host byte order except fields the protocol
// flags as network byte order. No netlink replies are parsed here; the
// decode walk exists so a built command can be checked against what was
// asked for.
package netlink
