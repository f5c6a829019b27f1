package wasm

// Helpers for assembling section contents by hand.

// AppendU32 appends v to dst as unsigned LEB128.
func AppendU32(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendName appends a length-prefixed UTF-8 name.
func AppendName(dst []byte, s string) []byte {
	dst = AppendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

// AppendVec appends a vector: element count followed by the pre-encoded elements.
func AppendVec(dst []byte, elems ...[]byte) []byte {
	dst = AppendU32(dst, uint32(len(elems)))
	for _, e := range elems {
		dst = append(dst, e...)
	}
	return dst
}

// AppendS32 appends v to dst as signed LEB128, as used by i32.const.
func AppendS32(dst []byte, v int32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
