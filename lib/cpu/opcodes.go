package cpu

// setupIns builds the static opcode table, fields are
// name, mode, length, cycles, page-cross cycles, eval.
// Holes are left nil and fault at execution.
func (c *Cpu) setupIns() {
	c.ins = [256]Instruction{
		// loads
		0xA9: {"LDA", modeImmediate, 2, 2, 0, c.lda},
		0xA5: {"LDA", modeZeroPage, 2, 3, 0, c.lda},
		0xB5: {"LDA", modeZeroPageX, 2, 4, 0, c.lda},
		0xAD: {"LDA", modeAbsolute, 3, 4, 0, c.lda},
		0xBD: {"LDA", modeAbsoluteX, 3, 4, 1, c.lda},
		0xB9: {"LDA", modeAbsoluteY, 3, 4, 1, c.lda},
		0xA1: {"LDA", modeIndirectX, 2, 6, 0, c.lda},
		0xB1: {"LDA", modeIndirectY, 2, 5, 1, c.lda},
		0xA2: {"LDX", modeImmediate, 2, 2, 0, c.ldx},
		0xA6: {"LDX", modeZeroPage, 2, 3, 0, c.ldx},
		0xB6: {"LDX", modeZeroPageY, 2, 4, 0, c.ldx},
		0xAE: {"LDX", modeAbsolute, 3, 4, 0, c.ldx},
		0xBE: {"LDX", modeAbsoluteY, 3, 4, 1, c.ldx},
		0xA0: {"LDY", modeImmediate, 2, 2, 0, c.ldy},
		0xA4: {"LDY", modeZeroPage, 2, 3, 0, c.ldy},
		0xB4: {"LDY", modeZeroPageX, 2, 4, 0, c.ldy},
		0xAC: {"LDY", modeAbsolute, 3, 4, 0, c.ldy},
		0xBC: {"LDY", modeAbsoluteX, 3, 4, 1, c.ldy},

		// stores
		0x85: {"STA", modeZeroPage, 2, 3, 0, c.sta},
		0x95: {"STA", modeZeroPageX, 2, 4, 0, c.sta},
		0x8D: {"STA", modeAbsolute, 3, 4, 0, c.sta},
		0x9D: {"STA", modeAbsoluteX, 3, 5, 0, c.sta},
		0x99: {"STA", modeAbsoluteY, 3, 5, 0, c.sta},
		0x81: {"STA", modeIndirectX, 2, 6, 0, c.sta},
		0x91: {"STA", modeIndirectY, 2, 6, 0, c.sta},
		0x86: {"STX", modeZeroPage, 2, 3, 0, c.stx},
		0x96: {"STX", modeZeroPageY, 2, 4, 0, c.stx},
		0x8E: {"STX", modeAbsolute, 3, 4, 0, c.stx},
		0x84: {"STY", modeZeroPage, 2, 3, 0, c.sty},
		0x94: {"STY", modeZeroPageX, 2, 4, 0, c.sty},
		0x8C: {"STY", modeAbsolute, 3, 4, 0, c.sty},

		// transfers
		0xAA: {"TAX", modeImplied, 1, 2, 0, c.tax},
		0xA8: {"TAY", modeImplied, 1, 2, 0, c.tay},
		0x8A: {"TXA", modeImplied, 1, 2, 0, c.txa},
		0x98: {"TYA", modeImplied, 1, 2, 0, c.tya},
		0xBA: {"TSX", modeImplied, 1, 2, 0, c.tsx},
		0x9A: {"TXS", modeImplied, 1, 2, 0, c.txs},

		// stack
		0x48: {"PHA", modeImplied, 1, 3, 0, c.pha},
		0x68: {"PLA", modeImplied, 1, 4, 0, c.pla},
		0x08: {"PHP", modeImplied, 1, 3, 0, c.php},
		0x28: {"PLP", modeImplied, 1, 4, 0, c.plp},

		// logic
		0x29: {"AND", modeImmediate, 2, 2, 0, c.and},
		0x25: {"AND", modeZeroPage, 2, 3, 0, c.and},
		0x35: {"AND", modeZeroPageX, 2, 4, 0, c.and},
		0x2D: {"AND", modeAbsolute, 3, 4, 0, c.and},
		0x3D: {"AND", modeAbsoluteX, 3, 4, 1, c.and},
		0x39: {"AND", modeAbsoluteY, 3, 4, 1, c.and},
		0x21: {"AND", modeIndirectX, 2, 6, 0, c.and},
		0x31: {"AND", modeIndirectY, 2, 5, 1, c.and},
		0x09: {"ORA", modeImmediate, 2, 2, 0, c.ora},
		0x05: {"ORA", modeZeroPage, 2, 3, 0, c.ora},
		0x15: {"ORA", modeZeroPageX, 2, 4, 0, c.ora},
		0x0D: {"ORA", modeAbsolute, 3, 4, 0, c.ora},
		0x1D: {"ORA", modeAbsoluteX, 3, 4, 1, c.ora},
		0x19: {"ORA", modeAbsoluteY, 3, 4, 1, c.ora},
		0x01: {"ORA", modeIndirectX, 2, 6, 0, c.ora},
		0x11: {"ORA", modeIndirectY, 2, 5, 1, c.ora},
		0x49: {"EOR", modeImmediate, 2, 2, 0, c.eor},
		0x45: {"EOR", modeZeroPage, 2, 3, 0, c.eor},
		0x55: {"EOR", modeZeroPageX, 2, 4, 0, c.eor},
		0x4D: {"EOR", modeAbsolute, 3, 4, 0, c.eor},
		0x5D: {"EOR", modeAbsoluteX, 3, 4, 1, c.eor},
		0x59: {"EOR", modeAbsoluteY, 3, 4, 1, c.eor},
		0x41: {"EOR", modeIndirectX, 2, 6, 0, c.eor},
		0x51: {"EOR", modeIndirectY, 2, 5, 1, c.eor},
		0x24: {"BIT", modeZeroPage, 2, 3, 0, c.bit},
		0x2C: {"BIT", modeAbsolute, 3, 4, 0, c.bit},

		// arithmetic
		0x69: {"ADC", modeImmediate, 2, 2, 0, c.adc},
		0x65: {"ADC", modeZeroPage, 2, 3, 0, c.adc},
		0x75: {"ADC", modeZeroPageX, 2, 4, 0, c.adc},
		0x6D: {"ADC", modeAbsolute, 3, 4, 0, c.adc},
		0x7D: {"ADC", modeAbsoluteX, 3, 4, 1, c.adc},
		0x79: {"ADC", modeAbsoluteY, 3, 4, 1, c.adc},
		0x61: {"ADC", modeIndirectX, 2, 6, 0, c.adc},
		0x71: {"ADC", modeIndirectY, 2, 5, 1, c.adc},
		0xE9: {"SBC", modeImmediate, 2, 2, 0, c.sbc},
		0xE5: {"SBC", modeZeroPage, 2, 3, 0, c.sbc},
		0xF5: {"SBC", modeZeroPageX, 2, 4, 0, c.sbc},
		0xED: {"SBC", modeAbsolute, 3, 4, 0, c.sbc},
		0xFD: {"SBC", modeAbsoluteX, 3, 4, 1, c.sbc},
		0xF9: {"SBC", modeAbsoluteY, 3, 4, 1, c.sbc},
		0xE1: {"SBC", modeIndirectX, 2, 6, 0, c.sbc},
		0xF1: {"SBC", modeIndirectY, 2, 5, 1, c.sbc},
		0xC9: {"CMP", modeImmediate, 2, 2, 0, c.cmp},
		0xC5: {"CMP", modeZeroPage, 2, 3, 0, c.cmp},
		0xD5: {"CMP", modeZeroPageX, 2, 4, 0, c.cmp},
		0xCD: {"CMP", modeAbsolute, 3, 4, 0, c.cmp},
		0xDD: {"CMP", modeAbsoluteX, 3, 4, 1, c.cmp},
		0xD9: {"CMP", modeAbsoluteY, 3, 4, 1, c.cmp},
		0xC1: {"CMP", modeIndirectX, 2, 6, 0, c.cmp},
		0xD1: {"CMP", modeIndirectY, 2, 5, 1, c.cmp},
		0xE0: {"CPX", modeImmediate, 2, 2, 0, c.cpx},
		0xE4: {"CPX", modeZeroPage, 2, 3, 0, c.cpx},
		0xEC: {"CPX", modeAbsolute, 3, 4, 0, c.cpx},
		0xC0: {"CPY", modeImmediate, 2, 2, 0, c.cpy},
		0xC4: {"CPY", modeZeroPage, 2, 3, 0, c.cpy},
		0xCC: {"CPY", modeAbsolute, 3, 4, 0, c.cpy},

		// increments and decrements
		0xE6: {"INC", modeZeroPage, 2, 5, 0, c.inc},
		0xF6: {"INC", modeZeroPageX, 2, 6, 0, c.inc},
		0xEE: {"INC", modeAbsolute, 3, 6, 0, c.inc},
		0xFE: {"INC", modeAbsoluteX, 3, 7, 0, c.inc},
		0xC6: {"DEC", modeZeroPage, 2, 5, 0, c.dec},
		0xD6: {"DEC", modeZeroPageX, 2, 6, 0, c.dec},
		0xCE: {"DEC", modeAbsolute, 3, 6, 0, c.dec},
		0xDE: {"DEC", modeAbsoluteX, 3, 7, 0, c.dec},
		0xE8: {"INX", modeImplied, 1, 2, 0, c.inx},
		0xC8: {"INY", modeImplied, 1, 2, 0, c.iny},
		0xCA: {"DEX", modeImplied, 1, 2, 0, c.dex},
		0x88: {"DEY", modeImplied, 1, 2, 0, c.dey},

		// shifts and rotates
		0x0A: {"ASL", modeAccumulator, 1, 2, 0, c.asl},
		0x06: {"ASL", modeZeroPage, 2, 5, 0, c.asl},
		0x16: {"ASL", modeZeroPageX, 2, 6, 0, c.asl},
		0x0E: {"ASL", modeAbsolute, 3, 6, 0, c.asl},
		0x1E: {"ASL", modeAbsoluteX, 3, 7, 0, c.asl},
		0x4A: {"LSR", modeAccumulator, 1, 2, 0, c.lsr},
		0x46: {"LSR", modeZeroPage, 2, 5, 0, c.lsr},
		0x56: {"LSR", modeZeroPageX, 2, 6, 0, c.lsr},
		0x4E: {"LSR", modeAbsolute, 3, 6, 0, c.lsr},
		0x5E: {"LSR", modeAbsoluteX, 3, 7, 0, c.lsr},
		0x2A: {"ROL", modeAccumulator, 1, 2, 0, c.rol},
		0x26: {"ROL", modeZeroPage, 2, 5, 0, c.rol},
		0x36: {"ROL", modeZeroPageX, 2, 6, 0, c.rol},
		0x2E: {"ROL", modeAbsolute, 3, 6, 0, c.rol},
		0x3E: {"ROL", modeAbsoluteX, 3, 7, 0, c.rol},
		0x6A: {"ROR", modeAccumulator, 1, 2, 0, c.ror},
		0x66: {"ROR", modeZeroPage, 2, 5, 0, c.ror},
		0x76: {"ROR", modeZeroPageX, 2, 6, 0, c.ror},
		0x6E: {"ROR", modeAbsolute, 3, 6, 0, c.ror},
		0x7E: {"ROR", modeAbsoluteX, 3, 7, 0, c.ror},

		// jumps
		0x4C: {"JMP", modeAbsolute, 3, 3, 0, c.jmp},
		0x6C: {"JMP", modeIndirect, 3, 5, 0, c.jmp},
		0x20: {"JSR", modeAbsolute, 3, 6, 0, c.jsr},
		0x60: {"RTS", modeImplied, 1, 6, 0, c.rts},
		0x40: {"RTI", modeImplied, 1, 6, 0, c.rti},
		0x00: {"BRK", modeImplied, 1, 7, 0, c.brk},

		// branches
		0x10: {"BPL", modeRelative, 2, 2, 0, c.bpl},
		0x30: {"BMI", modeRelative, 2, 2, 0, c.bmi},
		0x50: {"BVC", modeRelative, 2, 2, 0, c.bvc},
		0x70: {"BVS", modeRelative, 2, 2, 0, c.bvs},
		0x90: {"BCC", modeRelative, 2, 2, 0, c.bcc},
		0xB0: {"BCS", modeRelative, 2, 2, 0, c.bcs},
		0xD0: {"BNE", modeRelative, 2, 2, 0, c.bne},
		0xF0: {"BEQ", modeRelative, 2, 2, 0, c.beq},

		// flags
		0x18: {"CLC", modeImplied, 1, 2, 0, c.clc},
		0x38: {"SEC", modeImplied, 1, 2, 0, c.sec},
		0x58: {"CLI", modeImplied, 1, 2, 0, c.cli},
		0x78: {"SEI", modeImplied, 1, 2, 0, c.sei},
		0xB8: {"CLV", modeImplied, 1, 2, 0, c.clv},
		0xD8: {"CLD", modeImplied, 1, 2, 0, c.cld},
		0xF8: {"SED", modeImplied, 1, 2, 0, c.sed},

		0xEA: {"NOP", modeImplied, 1, 2, 0, c.nop},

		// ---- unofficial opcodes below ----

		0x1A: {"NOP", modeImplied, 1, 2, 0, c.nop},
		0x3A: {"NOP", modeImplied, 1, 2, 0, c.nop},
		0x5A: {"NOP", modeImplied, 1, 2, 0, c.nop},
		0x7A: {"NOP", modeImplied, 1, 2, 0, c.nop},
		0xDA: {"NOP", modeImplied, 1, 2, 0, c.nop},
		0xFA: {"NOP", modeImplied, 1, 2, 0, c.nop},

		// double byte no-ops
		0x04: {"DOP", modeZeroPage, 2, 3, 0, c.dop},
		0x44: {"DOP", modeZeroPage, 2, 3, 0, c.dop},
		0x64: {"DOP", modeZeroPage, 2, 3, 0, c.dop},
		0x14: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0x34: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0x54: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0x74: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0xD4: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0xF4: {"DOP", modeZeroPageX, 2, 4, 0, c.dop},
		0x80: {"DOP", modeImmediate, 2, 2, 0, c.dop},
		0x82: {"DOP", modeImmediate, 2, 2, 0, c.dop},
		0x89: {"DOP", modeImmediate, 2, 2, 0, c.dop},
		0xC2: {"DOP", modeImmediate, 2, 2, 0, c.dop},
		0xE2: {"DOP", modeImmediate, 2, 2, 0, c.dop},

		// triple byte no-ops
		0x0C: {"TOP", modeAbsolute, 3, 4, 0, c.dop},
		0x1C: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},
		0x3C: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},
		0x5C: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},
		0x7C: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},
		0xDC: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},
		0xFC: {"TOP", modeAbsoluteX, 3, 4, 1, c.dop},

		0xA7: {"LAX", modeZeroPage, 2, 3, 0, c.lax},
		0xB7: {"LAX", modeZeroPageY, 2, 4, 0, c.lax},
		0xAF: {"LAX", modeAbsolute, 3, 4, 0, c.lax},
		0xBF: {"LAX", modeAbsoluteY, 3, 4, 1, c.lax},
		0xA3: {"LAX", modeIndirectX, 2, 6, 0, c.lax},
		0xB3: {"LAX", modeIndirectY, 2, 5, 1, c.lax},

		0x87: {"AAX", modeZeroPage, 2, 3, 0, c.aax},
		0x97: {"AAX", modeZeroPageY, 2, 4, 0, c.aax},
		0x83: {"AAX", modeIndirectX, 2, 6, 0, c.aax},
		0x8F: {"AAX", modeAbsolute, 3, 4, 0, c.aax},

		0xEB: {"SBC", modeImmediate, 2, 2, 0, c.sbc},

		0xC7: {"DCP", modeZeroPage, 2, 5, 0, c.dcp},
		0xD7: {"DCP", modeZeroPageX, 2, 6, 0, c.dcp},
		0xCF: {"DCP", modeAbsolute, 3, 6, 0, c.dcp},
		0xDF: {"DCP", modeAbsoluteX, 3, 7, 0, c.dcp},
		0xDB: {"DCP", modeAbsoluteY, 3, 7, 0, c.dcp},
		0xC3: {"DCP", modeIndirectX, 2, 8, 0, c.dcp},
		0xD3: {"DCP", modeIndirectY, 2, 8, 0, c.dcp},

		0xE7: {"ISC", modeZeroPage, 2, 5, 0, c.isc},
		0xF7: {"ISC", modeZeroPageX, 2, 6, 0, c.isc},
		0xEF: {"ISC", modeAbsolute, 3, 6, 0, c.isc},
		0xFF: {"ISC", modeAbsoluteX, 3, 7, 0, c.isc},
		0xFB: {"ISC", modeAbsoluteY, 3, 7, 0, c.isc},
		0xE3: {"ISC", modeIndirectX, 2, 8, 0, c.isc},
		0xF3: {"ISC", modeIndirectY, 2, 8, 0, c.isc},

		0x07: {"SLO", modeZeroPage, 2, 5, 0, c.slo},
		0x17: {"SLO", modeZeroPageX, 2, 6, 0, c.slo},
		0x0F: {"SLO", modeAbsolute, 3, 6, 0, c.slo},
		0x1F: {"SLO", modeAbsoluteX, 3, 7, 0, c.slo},
		0x1B: {"SLO", modeAbsoluteY, 3, 7, 0, c.slo},
		0x03: {"SLO", modeIndirectX, 2, 8, 0, c.slo},
		0x13: {"SLO", modeIndirectY, 2, 8, 0, c.slo},

		0x27: {"RLA", modeZeroPage, 2, 5, 0, c.rla},
		0x37: {"RLA", modeZeroPageX, 2, 6, 0, c.rla},
		0x2F: {"RLA", modeAbsolute, 3, 6, 0, c.rla},
		0x3F: {"RLA", modeAbsoluteX, 3, 7, 0, c.rla},
		0x3B: {"RLA", modeAbsoluteY, 3, 7, 0, c.rla},
		0x23: {"RLA", modeIndirectX, 2, 8, 0, c.rla},
		0x33: {"RLA", modeIndirectY, 2, 8, 0, c.rla},

		0x47: {"SRE", modeZeroPage, 2, 5, 0, c.sre},
		0x57: {"SRE", modeZeroPageX, 2, 6, 0, c.sre},
		0x4F: {"SRE", modeAbsolute, 3, 6, 0, c.sre},
		0x5F: {"SRE", modeAbsoluteX, 3, 7, 0, c.sre},
		0x5B: {"SRE", modeAbsoluteY, 3, 7, 0, c.sre},
		0x43: {"SRE", modeIndirectX, 2, 8, 0, c.sre},
		0x53: {"SRE", modeIndirectY, 2, 8, 0, c.sre},

		0x67: {"RRA", modeZeroPage, 2, 5, 0, c.rra},
		0x77: {"RRA", modeZeroPageX, 2, 6, 0, c.rra},
		0x6F: {"RRA", modeAbsolute, 3, 6, 0, c.rra},
		0x7F: {"RRA", modeAbsoluteX, 3, 7, 0, c.rra},
		0x7B: {"RRA", modeAbsoluteY, 3, 7, 0, c.rra},
		0x63: {"RRA", modeIndirectX, 2, 8, 0, c.rra},
		0x73: {"RRA", modeIndirectY, 2, 8, 0, c.rra},

		0x0B: {"AAC", modeImmediate, 2, 2, 0, c.aac},
		0x2B: {"AAC", modeImmediate, 2, 2, 0, c.aac},
		0x4B: {"ASR", modeImmediate, 2, 2, 0, c.asr},
		0x6B: {"ARR", modeImmediate, 2, 2, 0, c.arr},
		0x8B: {"XAA", modeImmediate, 2, 2, 0, c.xaa},
		0xAB: {"ATX", modeImmediate, 2, 2, 0, c.atx},
		0xCB: {"AXS", modeImmediate, 2, 2, 0, c.axs},

		0x9F: {"AXA", modeAbsoluteY, 3, 5, 0, c.axa},
		0x93: {"AXA", modeIndirectY, 2, 6, 0, c.axa},
		0x9B: {"XAS", modeAbsoluteY, 3, 5, 0, c.xas},
		0x9E: {"SXA", modeAbsoluteY, 3, 5, 0, c.sxa},
		0x9C: {"SYA", modeAbsoluteX, 3, 5, 0, c.sya},
		0xBB: {"LAR", modeAbsoluteY, 3, 4, 1, c.lar},

		0x02: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x12: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x22: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x32: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x42: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x52: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x62: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x72: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0x92: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0xB2: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0xD2: {"KIL", modeImplied, 1, 2, 0, c.kil},
		0xF2: {"KIL", modeImplied, 1, 2, 0, c.kil},
	}
}

// loads and stores

func (c *Cpu) lda() {
	c.Rg.A = c.fetch()
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) ldx() {
	c.Rg.X = c.fetch()
	c.Rg.P.setZN(c.Rg.X)
}
func (c *Cpu) ldy() {
	c.Rg.Y = c.fetch()
	c.Rg.P.setZN(c.Rg.Y)
}
func (c *Cpu) sta() { c.bus.Write8(c.curr.opAddr, c.Rg.A) }
func (c *Cpu) stx() { c.bus.Write8(c.curr.opAddr, c.Rg.X) }
func (c *Cpu) sty() { c.bus.Write8(c.curr.opAddr, c.Rg.Y) }

// transfers

func (c *Cpu) tax() {
	c.Rg.X = c.Rg.A
	c.Rg.P.setZN(c.Rg.X)
}
func (c *Cpu) tay() {
	c.Rg.Y = c.Rg.A
	c.Rg.P.setZN(c.Rg.Y)
}
func (c *Cpu) txa() {
	c.Rg.A = c.Rg.X
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) tya() {
	c.Rg.A = c.Rg.Y
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) tsx() {
	c.Rg.X = c.Rg.Sp
	c.Rg.P.setZN(c.Rg.X)
}
func (c *Cpu) txs() { c.Rg.Sp = c.Rg.X }

// stack ops, PHP pushes with both break bits set whereas PLP/RTI load
// with B clear and E forced

func (c *Cpu) pha() { c.push8(c.Rg.A) }
func (c *Cpu) pla() {
	c.Rg.A = c.pull8()
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) php() { c.push8(uint8(c.Rg.P) | B | E) }
func (c *Cpu) plp() { c.Rg.P = Flags(c.pull8()&^B | E) }

// logic

func (c *Cpu) and() {
	c.Rg.A &= c.fetch()
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) ora() {
	c.Rg.A |= c.fetch()
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) eor() {
	c.Rg.A ^= c.fetch()
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) bit() {
	val := c.fetch()
	c.Rg.P.set(Z, c.Rg.A&val == 0)
	c.Rg.P.set(V, val&V != 0)
	c.Rg.P.set(N, val&N != 0)
}

// arithmetic

func (c *Cpu) addToA(val uint8) {
	sum := uint16(c.Rg.A) + uint16(val)
	if c.Rg.P.has(C) {
		sum++
	}
	res := uint8(sum)
	c.Rg.P.set(C, sum > 0xFF)
	c.Rg.P.set(V, (c.Rg.A^res)&(val^res)&0x80 != 0)
	c.Rg.A = res
	c.Rg.P.setZN(res)
}

func (c *Cpu) adc() { c.addToA(c.fetch()) }

// A - M - (1-C) == A + ^M + C
func (c *Cpu) sbc() { c.addToA(^c.fetch()) }

func (c *Cpu) compare(reg uint8) {
	val := c.fetch()
	c.Rg.P.set(C, reg >= val)
	c.Rg.P.setZN(reg - val)
}
func (c *Cpu) cmp() { c.compare(c.Rg.A) }
func (c *Cpu) cpx() { c.compare(c.Rg.X) }
func (c *Cpu) cpy() { c.compare(c.Rg.Y) }

// increments and decrements

func (c *Cpu) inc() {
	val := c.fetch() + 1
	c.store(val)
	c.Rg.P.setZN(val)
}
func (c *Cpu) dec() {
	val := c.fetch() - 1
	c.store(val)
	c.Rg.P.setZN(val)
}
func (c *Cpu) inx() {
	c.Rg.X++
	c.Rg.P.setZN(c.Rg.X)
}
func (c *Cpu) iny() {
	c.Rg.Y++
	c.Rg.P.setZN(c.Rg.Y)
}
func (c *Cpu) dex() {
	c.Rg.X--
	c.Rg.P.setZN(c.Rg.X)
}
func (c *Cpu) dey() {
	c.Rg.Y--
	c.Rg.P.setZN(c.Rg.Y)
}

// shifts and rotates

func (c *Cpu) aslVal(val uint8) uint8 {
	c.Rg.P.set(C, val&0x80 != 0)
	val <<= 1
	c.Rg.P.setZN(val)
	return val
}
func (c *Cpu) lsrVal(val uint8) uint8 {
	c.Rg.P.set(C, val&0x01 != 0)
	val >>= 1
	c.Rg.P.setZN(val)
	return val
}
func (c *Cpu) rolVal(val uint8) uint8 {
	carry := c.Rg.P.has(C)
	c.Rg.P.set(C, val&0x80 != 0)
	val <<= 1
	if carry {
		val |= 0x01
	}
	c.Rg.P.setZN(val)
	return val
}
func (c *Cpu) rorVal(val uint8) uint8 {
	carry := c.Rg.P.has(C)
	c.Rg.P.set(C, val&0x01 != 0)
	val >>= 1
	if carry {
		val |= 0x80
	}
	c.Rg.P.setZN(val)
	return val
}

func (c *Cpu) asl() { c.store(c.aslVal(c.fetch())) }
func (c *Cpu) lsr() { c.store(c.lsrVal(c.fetch())) }
func (c *Cpu) rol() { c.store(c.rolVal(c.fetch())) }
func (c *Cpu) ror() { c.store(c.rorVal(c.fetch())) }

// jumps and interrupts

func (c *Cpu) jmp() { c.Rg.Pc = c.curr.opAddr }

func (c *Cpu) jsr() {
	// the return address pushed is the last byte of this instruction
	c.push16(c.Rg.Pc + 1)
	c.Rg.Pc = c.curr.opAddr
}
func (c *Cpu) rts() { c.Rg.Pc = c.pull16() + 1 }
func (c *Cpu) rti() {
	c.Rg.P = Flags(c.pull8()&^B | E)
	c.Rg.Pc = c.pull16()
}

// BRK goes through the IRQ vector unless interrupts are disabled, in
// which case there is no handler to run and the machine stops.
func (c *Cpu) brk() {
	if c.Rg.P.has(I) {
		c.halted = true
		return
	}
	c.Rg.Pc++ // skip the padding byte
	c.service(brkInterrupt)
}

// branches

func (c *Cpu) branch(cond bool) {
	if !cond {
		return
	}
	offset := int8(c.bus.Read8(c.curr.opAddr))
	target := c.Rg.Pc + 1 + uint16(offset)
	c.extraCycles++
	if pageCrossed(c.Rg.Pc+1, target) {
		c.extraCycles++
	}
	c.Rg.Pc = target
}

func (c *Cpu) bpl() { c.branch(!c.Rg.P.has(N)) }
func (c *Cpu) bmi() { c.branch(c.Rg.P.has(N)) }
func (c *Cpu) bvc() { c.branch(!c.Rg.P.has(V)) }
func (c *Cpu) bvs() { c.branch(c.Rg.P.has(V)) }
func (c *Cpu) bcc() { c.branch(!c.Rg.P.has(C)) }
func (c *Cpu) bcs() { c.branch(c.Rg.P.has(C)) }
func (c *Cpu) bne() { c.branch(!c.Rg.P.has(Z)) }
func (c *Cpu) beq() { c.branch(c.Rg.P.has(Z)) }

// flag ops

func (c *Cpu) clc() { c.Rg.P.set(C, false) }
func (c *Cpu) sec() { c.Rg.P.set(C, true) }
func (c *Cpu) cli() { c.Rg.P.set(I, false) }
func (c *Cpu) sei() { c.Rg.P.set(I, true) }
func (c *Cpu) clv() { c.Rg.P.set(V, false) }
func (c *Cpu) cld() { c.Rg.P.set(D, false) }
func (c *Cpu) sed() { c.Rg.P.set(D, true) }

func (c *Cpu) nop() {}

// unofficial opcodes, composed from the official helpers so the flag
// side effects line up

// no-op with an operand fetch
func (c *Cpu) dop() { _ = c.fetch() }

func (c *Cpu) lax() {
	val := c.fetch()
	c.Rg.A = val
	c.Rg.X = val
	c.Rg.P.setZN(val)
}

// store A & X, no flags
func (c *Cpu) aax() { c.bus.Write8(c.curr.opAddr, c.Rg.A&c.Rg.X) }

// AND then copy N into C
func (c *Cpu) aac() {
	c.and()
	c.Rg.P.set(C, c.Rg.P.has(N))
}

// AND then LSR A
func (c *Cpu) asr() {
	c.Rg.A &= c.fetch()
	c.Rg.A = c.lsrVal(c.Rg.A)
}

// AND then ROR A, with C/V read off bits 6 and 5 of the result
func (c *Cpu) arr() {
	val := c.Rg.A & c.fetch()
	res := val >> 1
	if c.Rg.P.has(C) {
		res |= 0x80
	}
	c.Rg.A = res
	c.Rg.P.setZN(res)
	c.Rg.P.set(C, res&0x40 != 0)
	c.Rg.P.set(V, (res>>6)&1 != (res>>5)&1)
}

func (c *Cpu) xaa() {
	c.Rg.A = c.Rg.X & c.fetch()
	c.Rg.P.setZN(c.Rg.A)
}

func (c *Cpu) atx() {
	val := c.Rg.A & c.fetch()
	c.Rg.A = val
	c.Rg.X = val
	c.Rg.P.setZN(val)
}

// X = (A & X) - imm, carry as in CMP
func (c *Cpu) axs() {
	val := c.fetch()
	and := c.Rg.A & c.Rg.X
	c.Rg.P.set(C, and >= val)
	c.Rg.X = and - val
	c.Rg.P.setZN(c.Rg.X)
}

// read-modify-write combos

func (c *Cpu) dcp() {
	val := c.fetch() - 1
	c.store(val)
	c.Rg.P.set(C, c.Rg.A >= val)
	c.Rg.P.setZN(c.Rg.A - val)
}
func (c *Cpu) isc() {
	val := c.fetch() + 1
	c.store(val)
	c.addToA(^val)
}
func (c *Cpu) slo() {
	val := c.aslVal(c.fetch())
	c.store(val)
	c.Rg.A |= val
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) rla() {
	val := c.rolVal(c.fetch())
	c.store(val)
	c.Rg.A &= val
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) sre() {
	val := c.lsrVal(c.fetch())
	c.store(val)
	c.Rg.A ^= val
	c.Rg.P.setZN(c.Rg.A)
}
func (c *Cpu) rra() {
	val := c.rorVal(c.fetch())
	c.store(val)
	c.addToA(val)
}

// the "high byte + 1" stores

func (c *Cpu) axa() {
	hi := uint8(c.curr.opAddr >> 8)
	c.bus.Write8(c.curr.opAddr, c.Rg.A&c.Rg.X&(hi+1))
}
func (c *Cpu) sxa() {
	hi := uint8(c.curr.opAddr >> 8)
	c.bus.Write8(c.curr.opAddr, c.Rg.X&(hi+1))
}
func (c *Cpu) sya() {
	hi := uint8(c.curr.opAddr >> 8)
	c.bus.Write8(c.curr.opAddr, c.Rg.Y&(hi+1))
}
func (c *Cpu) xas() {
	c.Rg.Sp = c.Rg.A & c.Rg.X
	hi := uint8(c.curr.opAddr >> 8)
	c.bus.Write8(c.curr.opAddr, c.Rg.Sp&(hi+1))
}

func (c *Cpu) lar() {
	val := c.fetch() & c.Rg.Sp
	c.Rg.A = val
	c.Rg.X = val
	c.Rg.Sp = val
	c.Rg.P.setZN(val)
}

// the halt rows, the real chip locks up here
func (c *Cpu) kil() { c.halted = true }
