package common

const (
	BitA = iota
	BitB
	BitSelect
	BitStart
	BitUp
	BitDown
	BitLeft
	BitRight
)

type joypad struct {
	buttons  [8]uint8
	shiftBit uint8
}

func (j *joypad) Serialise(s Serialiser) error {
	return s.Serialise(j.buttons, j.shiftBit)
}
func (j *joypad) DeSerialise(s Serialiser) error {
	return s.DeSerialise(&j.buttons, &j.shiftBit)
}

// Controllers are the two shift register joypads at $4016/$4017.
type Controllers struct {
	pads   [2]joypad
	strobe uint8
}

func (c *Controllers) Init() {
	c.pads = [2]joypad{}
	c.strobe = 0
}

func (c *Controllers) Reset() {
	c.Init()
}

func (c *Controllers) Serialise(s Serialiser) error {
	for i := range c.pads {
		if err := c.pads[i].Serialise(s); err != nil {
			return err
		}
	}
	return s.Serialise(c.strobe)
}
func (c *Controllers) DeSerialise(s Serialiser) error {
	for i := range c.pads {
		if err := c.pads[i].DeSerialise(s); err != nil {
			return err
		}
	}
	return s.DeSerialise(&c.strobe)
}

// Poke is called by the window layer, the strobe only gates the shift
// position since we cannot sample the keyboard ourselves.
func (c *Controllers) Poke(controllerId uint8, button uint8, pressed bool) {
	pad := &c.pads[controllerId]
	if pressed {
		pad.buttons[button] = 1
	} else {
		pad.buttons[button] = 0
	}
}

func (c *Controllers) readButton(controllerId uint8) uint8 {
	pad := &c.pads[controllerId]

	if c.strobe == 1 {
		pad.shiftBit = 0
	}
	if pad.shiftBit < 8 {
		active := pad.buttons[pad.shiftBit]
		pad.shiftBit++
		return active
	}
	return 0
}

// BusInt
func (c *Controllers) Read8(addr uint16) uint8 {
	switch addr {
	case 0x4016:
		return c.readButton(0)
	case 0x4017:
		return c.readButton(1)
	}
	return 0
}

func (c *Controllers) Write8(addr uint16, val uint8) {
	switch addr {
	case 0x4016:
		c.strobe = val & 0x1
		for i := range c.pads {
			c.pads[i].shiftBit = 0
		}
	}
}
