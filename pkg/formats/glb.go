// GLB (binary glTF) container reader.
package formats

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// GLB format errors.
var (
	ErrTruncatedData        = errors.New("truncated GLB data")
	ErrInvalidMagic         = errors.New("invalid GLB magic: expected 'glTF'")
	ErrMissingMetadataChunk = errors.New("GLB first chunk is not JSON metadata")
	ErrMissingBufferChunk   = errors.New("GLB chunk after metadata is not a binary buffer")
	ErrInvalidMetadata      = errors.New("invalid GLB JSON metadata")
)

// GLB layout constants.
const (
	GLBMagic         uint32 = 0x46546C67 // "glTF"
	GLBHeaderSize           = 12
	GLBChunkHeadSize        = 8
	ChunkTypeJSON    uint32 = 0x4E4F534A // "JSON"
	ChunkTypeBIN     uint32 = 0x004E4942 // "BIN\x00"
)

// GLBHeader is the 12-byte file header.
type GLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32 // Total file length in bytes
}

// MarshalBinary encodes the header back into its 12-byte form.
func (h GLBHeader) MarshalBinary() ([]byte, error) {
	data := make([]byte, GLBHeaderSize)
	binary.LittleEndian.PutUint32(data[0:], h.Magic)
	binary.LittleEndian.PutUint32(data[4:], h.Version)
	binary.LittleEndian.PutUint32(data[8:], h.Length)
	return data, nil
}

// Chunk is a typed payload inside the container.
type Chunk struct {
	Length uint32
	Type   uint32
	Data   []byte // Aliases the parsed input
}

// GLB represents a parsed binary glTF container.
type GLB struct {
	Header   GLBHeader
	JSON     Chunk
	BIN      Chunk
	Document *Document
}

// ParseGLB parses GLB data from a byte slice.
// The returned chunk payloads share memory with data.
func ParseGLB(data []byte) (*GLB, error) {
	if len(data) < GLBHeaderSize {
		return nil, ErrTruncatedData
	}

	glb := &GLB{
		Header: GLBHeader{
			Magic:   binary.LittleEndian.Uint32(data[0:]),
			Version: binary.LittleEndian.Uint32(data[4:]),
			Length:  binary.LittleEndian.Uint32(data[8:]),
		},
	}
	if glb.Header.Magic != GLBMagic {
		return nil, ErrInvalidMagic
	}

	jsonChunk, err := readChunk(data, GLBHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("metadata chunk: %w", err)
	}
	if jsonChunk.Type != ChunkTypeJSON {
		return nil, fmt.Errorf("%w: type 0x%08x", ErrMissingMetadataChunk, jsonChunk.Type)
	}
	glb.JSON = jsonChunk

	binOffset := GLBHeaderSize + GLBChunkHeadSize + int(jsonChunk.Length)
	binChunk, err := readChunk(data, binOffset)
	if err != nil {
		if errors.Is(err, ErrTruncatedData) && binOffset >= len(data) {
			return nil, ErrMissingBufferChunk
		}
		return nil, fmt.Errorf("buffer chunk: %w", err)
	}
	if binChunk.Type != ChunkTypeBIN {
		return nil, fmt.Errorf("%w: type 0x%08x", ErrMissingBufferChunk, binChunk.Type)
	}
	glb.BIN = binChunk

	doc := &Document{}
	if err := json.Unmarshal(jsonChunk.Data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	glb.Document = doc

	return glb, nil
}

// readChunk slices the chunk whose header starts at offset.
func readChunk(data []byte, offset int) (Chunk, error) {
	if offset < 0 || offset+GLBChunkHeadSize > len(data) {
		return Chunk{}, ErrTruncatedData
	}

	c := Chunk{
		Length: binary.LittleEndian.Uint32(data[offset:]),
		Type:   binary.LittleEndian.Uint32(data[offset+4:]),
	}

	start := offset + GLBChunkHeadSize
	end := start + int(c.Length)
	if end > len(data) || end < start {
		return Chunk{}, fmt.Errorf("%w: chunk needs %d bytes, %d available", ErrTruncatedData, c.Length, len(data)-start)
	}
	c.Data = data[start:end:end]

	return c, nil
}

// ParseGLBFile parses a GLB file from disk.
func ParseGLBFile(path string) (*GLB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GLB file: %w", err)
	}
	return ParseGLB(data)
}
