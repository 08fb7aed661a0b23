// Package endian provides byte order utilities for binary encoding and decoding.
//
// It extends Go's standard encoding/binary package by combining ByteOrder and
// AppendByteOrder into a single EndianEngine interface, satisfied directly by
// binary.LittleEndian and binary.BigEndian. UnityFS bundles are always
// big-endian on the wire (see Reader), but the engine stays selectable so the
// lower-level primitive reads in this package aren't hard-coded to one order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// Every UnityFS bundle header and BlocksInfo stream uses this engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
