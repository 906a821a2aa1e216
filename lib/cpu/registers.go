package cpu

import (
	"fmt"
)

// status flags
const (
	C = 1 << iota // carry
	Z             // zero result
	I             // interrupt disable
	D             // decimal mode (no effect, the 2A03 drops BCD)
	B             // break command
	E             // expansion, reads back as set
	V             // overflow
	N             // negative result
)

type Flags uint8

func (f Flags) has(mask uint8) bool {
	return uint8(f)&mask != 0
}

func (f *Flags) set(mask uint8, on bool) {
	if on {
		*f |= Flags(mask)
	} else {
		*f &^= Flags(mask)
	}
}

func (f *Flags) setZN(val uint8) {
	f.set(Z, val == 0)
	f.set(N, val&0x80 != 0)
}

func (f Flags) bit(mask uint8) int {
	if f.has(mask) {
		return 1
	}
	return 0
}

type Registers struct {
	A  uint8
	X  uint8
	Y  uint8
	Pc uint16
	Sp uint8
	P  Flags
}

// power-on state, the Pc vector fetch is the cpu's job
func (r *Registers) Reset() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.Sp = 0xFD
	r.P = Flags(I | E)
}

func (r Registers) String() string {
	return fmt.Sprintf(
		"Pc: 0x%04x, Sp: 0x%02x, Ps: 0x%02x (N:%d V:%d E:%d B:%d D:%d I:%d Z:%d C:%d), A: 0x%02x, X: 0x%02x, Y: 0x%02x",
		r.Pc, r.Sp, uint8(r.P),
		r.P.bit(N), r.P.bit(V), r.P.bit(E), r.P.bit(B), r.P.bit(D), r.P.bit(I), r.P.bit(Z), r.P.bit(C),
		r.A, r.X, r.Y)
}
