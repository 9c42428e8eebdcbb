// Package raster serializes packed RGB pixel buffers as PNG images.
package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

// ErrBufferSize is returned when a pixel buffer does not hold exactly
// width*height*3 bytes.
var ErrBufferSize = errors.New("pixel byte length does not match width*height*3")

const (
	bitDepth      = 8
	colorTypeRGB  = 2
	filterNone    = 0
	bytesPerPixel = 3
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// CheckBuffer reports whether pix is a valid RGB buffer for the given dimensions.
func CheckBuffer(width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrBufferSize, width, height)
	}
	if len(pix) != width*height*bytesPerPixel {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(pix), width, height)
	}
	return nil
}

// EncodePNG writes pix as an 8-bit truecolor, non-interlaced PNG. The buffer is
// validated and the image fully assembled before anything is written to w.
func EncodePNG(w io.Writer, width, height int, pix []byte) error {
	data, err := encode(width, height, pix)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SavePNG encodes pix and writes it to path atomically. Nothing is created on
// disk if the buffer is invalid. The parent directory must already exist.
func SavePNG(path string, width, height int, pix []byte) error {
	data, err := encode(width, height, pix)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp png file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename png file: %w", err)
	}
	return nil
}

func encode(width, height int, pix []byte) ([]byte, error) {
	if err := CheckBuffer(width, height, pix); err != nil {
		return nil, err
	}

	idat, err := compressScanlines(width, height, pix)
	if err != nil {
		return nil, err
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeRGB
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method

	var buf bytes.Buffer
	buf.Grow(len(pngSignature) + 3*12 + len(ihdr) + len(idat))
	buf.Write(pngSignature[:])
	writeChunk(&buf, "IHDR", ihdr[:])
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

// compressScanlines prefixes each row with a "no filter" byte and deflates the
// stream at best compression.
func compressScanlines(width, height int, pix []byte) ([]byte, error) {
	stride := width * bytesPerPixel

	var cbuf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&cbuf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("create zlib writer: %w", err)
	}
	filter := []byte{filterNone}
	for y := 0; y < height; y++ {
		if _, err := zw.Write(filter); err != nil {
			return nil, fmt.Errorf("compress scanline %d: %w", y, err)
		}
		if _, err := zw.Write(pix[y*stride : (y+1)*stride]); err != nil {
			return nil, fmt.Errorf("compress scanline %d: %w", y, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zlib writer: %w", err)
	}
	return cbuf.Bytes(), nil
}

// writeChunk appends a length-prefixed chunk whose CRC covers tag and data.
func writeChunk(buf *bytes.Buffer, tag string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], tag)
	buf.Write(header[:])
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}
