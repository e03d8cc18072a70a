package cmos

// DecodeBCD converts a packed-decimal byte to its binary value. Nibbles
// above 9 produce garbage, deliberately unchecked: the data-mode bit of
// status register B decides whether this codec applies at all.
func DecodeBCD(b byte) byte {
	return (b & 0x0F) + (b>>4)*10
}

// EncodeBCD is the exact inverse of DecodeBCD for values 0-99.
func EncodeBCD(v byte) byte {
	return ((v / 10) << 4) | (v % 10)
}
