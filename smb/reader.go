// SPDX-License-Identifier: Apache-2.0

package smb

import "encoding/binary"

// SMB uses little-endian byte order for all multi-byte values
var le = binary.LittleEndian

// byteReader reads little-endian fields.  Reads past the end return zero values and
// set the overrun flag, so a message can be decoded without checking every field.
type byteReader struct {
	data    []byte
	pos     int
	overrun bool
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

// Skip advances the position by n bytes
func (r *byteReader) Skip(n int) {
	if r.pos+n > len(r.data) {
		r.overrun = true
		r.pos = len(r.data)
		return
	}
	r.pos += n
}

// Seek sets the position
func (r *byteReader) Seek(pos int) {
	if pos > len(r.data) {
		r.overrun = true
		pos = len(r.data)
	}
	r.pos = pos
}

// ReadBytes reads n bytes and advances position
func (r *byteReader) ReadBytes(n int) []byte {
	if n < 0 || r.pos+n > len(r.data) {
		r.overrun = true
		return nil
	}
	result := r.data[r.pos : r.pos+n]
	r.pos += n
	return result
}

func (r *byteReader) ReadOneByte() byte {
	if r.pos >= len(r.data) {
		r.overrun = true
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *byteReader) ReadUint16() uint16 {
	if r.pos+2 > len(r.data) {
		r.overrun = true
		return 0
	}
	v := le.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *byteReader) ReadUint32() uint32 {
	if r.pos+4 > len(r.data) {
		r.overrun = true
		return 0
	}
	v := le.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *byteReader) ReadUint64() uint64 {
	if r.pos+8 > len(r.data) {
		r.overrun = true
		return 0
	}
	v := le.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}
