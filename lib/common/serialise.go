package common

import (
	"encoding/gob"
	"os"
)

type Serialiser interface {
	Serialise(elem ...interface{}) error
	DeSerialise(elem ...interface{}) error
}

type Serialisable interface {
	Serialise(s Serialiser) error
	DeSerialise(s Serialiser) error
}

func NewSerialiser(file *os.File) Serialiser {
	return &gobSerialiser{
		encoder: gob.NewEncoder(file),
		decoder: gob.NewDecoder(file),
	}
}

type gobSerialiser struct {
	encoder *gob.Encoder
	decoder *gob.Decoder
}

func (g *gobSerialiser) Serialise(elems ...interface{}) error {
	for _, elem := range elems {
		if e, ok := elem.(Serialisable); ok {
			if err := e.Serialise(g); err != nil {
				return err
			}
			continue
		}
		if err := g.encoder.Encode(elem); err != nil {
			return err
		}
	}
	return nil
}

func (g *gobSerialiser) DeSerialise(elems ...interface{}) error {
	for _, elem := range elems {
		if e, ok := elem.(Serialisable); ok {
			if err := e.DeSerialise(g); err != nil {
				return err
			}
			continue
		}
		if err := g.decoder.Decode(elem); err != nil {
			return err
		}
	}
	return nil
}
