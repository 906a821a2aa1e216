package cpu

// interrupt describes one entry path: where the vector lives, which
// break bits go onto the stack and what the entry sequence costs.
type interrupt struct {
	vector uint16
	bMask  uint8
	cycles int
}

var (
	nmiInterrupt = interrupt{vector: 0xFFFA, bMask: E, cycles: 2}
	brkInterrupt = interrupt{vector: 0xFFFE, bMask: B | E, cycles: 1}
)

func (c *Cpu) service(in interrupt) {
	c.push16(c.Rg.Pc)
	c.push8(uint8(c.Rg.P)&^(B|E) | in.bMask)
	c.Rg.P.set(I, true)

	c.clock += uint64(in.cycles)
	c.bus.Tick(in.cycles)

	c.Rg.Pc = c.bus.Read16(in.vector)
}
