package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/talaendril/famigo/lib/common"
)

// "NES" + EOF
const iNESMagicConstant = 0x1A53454E

var CartEndianness = binary.LittleEndian

type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

type iNESHeader struct {
	Magic    uint32
	PrgCount uint8   // in 16kB units
	ChrCount uint8   // in 8kB units (0 means the board uses CHR RAM)
	Control1 uint8   // mapper low nibble, mirroring, battery, trainer
	Control2 uint8   // mapper high nibble, iNES version
	Padding  [8]byte // should be zero filled
}

type Cartridge struct {
	path string

	prgRom *common.Rom
	chr    *common.Rom

	mapper    uint8
	mirroring Mirroring
}

func (c *Cartridge) Init(cartPath string) error {
	c.path = cartPath

	c.prgRom = new(common.Rom)
	c.chr = new(common.Rom)

	if c.path == "" {
		// go tests do not use a cartridge but rather just
		// soft load code on demand
		return c.blankInit()
	}

	file, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("error closing %v: %v, ignoring since we didn't write anything", c.path, err)
		}
	}()

	header := iNESHeader{}
	if err := binary.Read(file, CartEndianness, &header); err != nil {
		return fmt.Errorf("failed to read the iNES header: %w", err)
	}
	if header.Magic != iNESMagicConstant {
		return fmt.Errorf("muggle iNES file, wrong magic number: 0x%08x", header.Magic)
	}
	if (header.Control2>>2)&0x3 != 0 {
		return fmt.Errorf("iNES 2.0 images are not supported")
	}

	c.mapper = header.Control2&0xF0 | header.Control1>>4
	if c.mapper != 0 {
		return fmt.Errorf("mapper %d not supported, only NROM", c.mapper)
	}

	switch {
	case header.Control1&0x08 != 0:
		c.mirroring = MirrorFourScreen
	case header.Control1&0x01 != 0:
		c.mirroring = MirrorVertical
	default:
		c.mirroring = MirrorHorizontal
	}

	if header.Control1&0x04 != 0 {
		// trainers are a relic of copier hardware, skip
		if _, err := file.Seek(512, io.SeekCurrent); err != nil {
			return err
		}
	}

	c.prgRom.Init(int(header.PrgCount)*0x4000, false)
	if _, err := c.prgRom.LoadFromFile(file); err != nil {
		return fmt.Errorf("failed to load the PRG rom: %w", err)
	}

	if header.ChrCount == 0 {
		c.chr.Init(0x2000, true)
	} else {
		c.chr.Init(int(header.ChrCount)*0x2000, false)
		if _, err := c.chr.LoadFromFile(file); err != nil {
			return fmt.Errorf("failed to load the CHR rom: %w", err)
		}
	}

	return nil
}

// blank writable image so tests can poke code and vectors directly
func (c *Cartridge) blankInit() error {
	c.prgRom.Init(0x8000, true)
	c.chr.Init(0x2000, true)
	c.mirroring = MirrorHorizontal
	return nil
}

func (c *Cartridge) Reset() {
	if c.path != "" {
		if err := c.Init(c.path); err != nil {
			log.Panicf("failed to reload the cartridge: %v", err)
		}
	}
}

func (c *Cartridge) Mirroring() Mirroring {
	return c.mirroring
}
func (c *Cartridge) SetMirroring(mirroring Mirroring) {
	c.mirroring = mirroring
}

// NROM fixed mapping, 16KiB images mirror into both banks
func (c *Cartridge) ReadPrg(addr uint16) uint8 {
	offset := int(addr-0x8000) % c.prgRom.Size()
	return c.prgRom.Read8(uint16(offset))
}

func (c *Cartridge) ReadChr(addr uint16) uint8 {
	return c.chr.Read8(addr)
}
func (c *Cartridge) WriteChr(addr uint16, val uint8) {
	c.chr.Write8(addr, val)
}

// WriteRom16 pokes cpu-space addresses of a blank (writable) image,
// mainly used by tests to plant the reset vector.
func (c *Cartridge) WriteRom16(addr uint16, val uint16) {
	c.prgRom.Write16(addr-0x8000, val)
}

func (c *Cartridge) Serialise(s common.Serialiser) error {
	return s.Serialise(c.prgRom, c.chr, c.mirroring)
}
func (c *Cartridge) DeSerialise(s common.Serialiser) error {
	return s.DeSerialise(c.prgRom, c.chr, &c.mirroring)
}

func (c *Cartridge) GetStateSaveFile() *os.File {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Panicf("failed to get user homedir: %v", err)
	}
	_, romName := filepath.Split(c.path)
	// a hash of the prgRom helps since tmp images ("a.nes") tend to share names
	saveFolder := fmt.Sprintf("%s/.config/famigo", homeDir)
	save := fmt.Sprintf("%s/%s_%x", saveFolder, romName, c.prgRom.Hash())
	if _, err := os.Stat(save); os.IsNotExist(err) {
		if err := os.MkdirAll(saveFolder, 0700); err != nil {
			log.Panicf("failed to create save folder: %v", err)
		}
		f, err := os.Create(save)
		if err != nil {
			log.Panicf("failed to create state save file: %v", err)
		}
		f.Close()
	}
	f, err := os.OpenFile(save, os.O_CREATE|os.O_RDWR, os.ModeExclusive)
	if err != nil {
		log.Panicf("failed to open state save file: %v", err)
	}
	return f
}
