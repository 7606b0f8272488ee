// Package exefile reads and rewrites static data tables embedded in the
// game executable image.
//
// The image is treated as opaque: only the bytes of a known table at a
// fixed file offset are decoded, and encoding produces a copy of the
// original image in which only those bytes differ.
package exefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lunixbochs/struc"
)

const (
	// TerrainTableOffset is the file offset of the world map
	// terrain table.
	TerrainTableOffset = 0x56c8a0

	NumTerrainRegions     = 16
	TerrainTypesPerRegion = 4

	// TerrainTableSize is the size of the terrain table in bytes.
	TerrainTableSize = NumTerrainRegions * TerrainTypesPerRegion

	// MaxTerrainType is the largest valid terrain type ID.
	MaxTerrainType = 31
)

var (
	// ErrImageTooSmall is returned when an executable image does
	// not contain the entire terrain table.
	ErrImageTooSmall = errors.New("executable image is too small")

	// ErrOutOfRange is returned when a region index, terrain index,
	// or terrain type is outside of its valid range.
	ErrOutOfRange = errors.New("value out of range")
)

// TerrainRegion is one region of the terrain table. It assigns up to
// four terrain type IDs to a world map region.
type TerrainRegion struct {
	TerrainTypes [TerrainTypesPerRegion]uint8 `struc:"[4]uint8"`
}

// TerrainRegionPatch is a partial TerrainRegion. Nil entries leave the
// corresponding terrain type unchanged.
type TerrainRegionPatch struct {
	TerrainTypes [TerrainTypesPerRegion]*uint8
}

type terrainTable struct {
	Regions [NumTerrainRegions]TerrainRegion
}

// ParseOrExit calls Parse. It calls DefaultExitFn if an error occurs.
func ParseOrExit(image []byte) *File {
	f, err := Parse(image)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to parse executable image - %w", err))
	}

	return f
}

// Parse decodes the terrain table from an executable image.
//
// The image is copied, so the caller may reuse or modify it afterwards.
func Parse(image []byte) (*File, error) {
	if len(image) < TerrainTableOffset+TerrainTableSize {
		return nil, fmt.Errorf("expected at least %d bytes, got %d - %w",
			TerrainTableOffset+TerrainTableSize, len(image), ErrImageTooSmall)
	}

	original := make([]byte, len(image))

	copy(original, image)

	f := &File{
		original: original,
	}

	raw := original[TerrainTableOffset : TerrainTableOffset+TerrainTableSize]

	err := struc.UnpackWithOrder(bytes.NewReader(raw), &f.terrain, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack terrain table - %w", err)
	}

	return f, nil
}

// File is a decoded executable image. Its tables can be modified
// in memory and written back using Bytes.
//
// A File must not be modified by multiple goroutines concurrently.
type File struct {
	original []byte
	terrain  terrainTable
}

// Len returns the size of the original executable image.
func (o *File) Len() int {
	return len(o.original)
}

// TerrainRegions returns a copy of the entire terrain table.
func (o *File) TerrainRegions() [NumTerrainRegions]TerrainRegion {
	return o.terrain.Regions
}

// TerrainRegion returns the region at the specified index.
func (o *File) TerrainRegion(index int) (TerrainRegion, error) {
	err := checkRegionIndex(index)
	if err != nil {
		return TerrainRegion{}, err
	}

	return o.terrain.Regions[index], nil
}

// SetTerrainRegion merges the non-nil terrain types of patch into
// the region at the specified index. Nothing is modified if the
// index or any supplied terrain type is out of range.
func (o *File) SetTerrainRegion(index int, patch TerrainRegionPatch) error {
	err := checkRegionIndex(index)
	if err != nil {
		return err
	}

	for i, terrainType := range patch.TerrainTypes {
		if terrainType == nil {
			continue
		}

		err = checkTerrainType(int(*terrainType))
		if err != nil {
			return fmt.Errorf("terrain index %d - %w", i, err)
		}
	}

	region := &o.terrain.Regions[index]

	for i, terrainType := range patch.TerrainTypes {
		if terrainType != nil {
			region.TerrainTypes[i] = *terrainType
		}
	}

	return nil
}

// TerrainType returns a terrain type ID of a region.
func (o *File) TerrainType(regionIndex int, terrainIndex int) (uint8, error) {
	err := checkRegionIndex(regionIndex)
	if err != nil {
		return 0, err
	}

	err = checkTerrainIndex(terrainIndex)
	if err != nil {
		return 0, err
	}

	return o.terrain.Regions[regionIndex].TerrainTypes[terrainIndex], nil
}

// SetTerrainType sets a terrain type ID of a region. Nothing is
// modified if any argument is out of range.
func (o *File) SetTerrainType(regionIndex int, terrainIndex int, terrainType int) error {
	err := checkRegionIndex(regionIndex)
	if err != nil {
		return err
	}

	err = checkTerrainIndex(terrainIndex)
	if err != nil {
		return err
	}

	err = checkTerrainType(terrainType)
	if err != nil {
		return err
	}

	o.terrain.Regions[regionIndex].TerrainTypes[terrainIndex] = uint8(terrainType)

	return nil
}

// BytesOrExit calls Bytes. It calls DefaultExitFn if an error occurs.
func (o *File) BytesOrExit() []byte {
	b, err := o.Bytes()
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to encode executable image - %w", err))
	}

	return b
}

// Bytes returns a new copy of the original executable image with the
// current terrain table written at TerrainTableOffset. No other bytes
// differ from the original image.
func (o *File) Bytes() ([]byte, error) {
	table := bytes.NewBuffer(make([]byte, 0, TerrainTableSize))

	err := struc.PackWithOrder(table, &o.terrain, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to pack terrain table - %w", err)
	}

	if table.Len() != TerrainTableSize {
		return nil, fmt.Errorf("packed terrain table is %d bytes, expected %d",
			table.Len(), TerrainTableSize)
	}

	out := make([]byte, len(o.original))

	copy(out, o.original)

	copy(out[TerrainTableOffset:], table.Bytes())

	return out, nil
}

func checkRegionIndex(index int) error {
	if index < 0 || index >= NumTerrainRegions {
		return fmt.Errorf("region index must be in the range of 0-%d, got %d - %w",
			NumTerrainRegions-1, index, ErrOutOfRange)
	}

	return nil
}

func checkTerrainIndex(index int) error {
	if index < 0 || index >= TerrainTypesPerRegion {
		return fmt.Errorf("terrain index must be in the range of 0-%d, got %d - %w",
			TerrainTypesPerRegion-1, index, ErrOutOfRange)
	}

	return nil
}

func checkTerrainType(terrainType int) error {
	if terrainType < 0 || terrainType > MaxTerrainType {
		return fmt.Errorf("terrain type must be in the range of 0-%d, got %d - %w",
			MaxTerrainType, terrainType, ErrOutOfRange)
	}

	return nil
}
