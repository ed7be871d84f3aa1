package vtu

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// decodeBinaryValues decodes one inline-base64 or appended data block
// into float64 values. Uncompressed data is a single base64 stream of
// header word plus payload; zlib-compressed data is the base64 of the
// header block followed by the base64 of the concatenated compressed
// blocks, matching the VTK writer layout.
func (f *File) decodeBinaryValues(b64, typ string, size int) ([]float64, error) {
	raw, err := f.binaryPayload(stripSpace(b64))
	if err != nil {
		return nil, err
	}

	return bytesToFloats(raw, typ, size, f.byteOrder())
}

func (f *File) binaryPayload(b64 string) ([]byte, error) {
	switch f.doc.Compressor {
	case "":
		return f.rawPayload(b64)
	case "vtkZLibDataCompressor":
		return f.zlibPayload(b64)
	default:
		return nil, fmt.Errorf("%w: unsupported compressor %q", ErrMalformed, f.doc.Compressor)
	}
}

func (f *File) rawPayload(b64 string) ([]byte, error) {
	dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(b64))

	n, err := f.readHeaderWord(dec)
	if err != nil {
		return nil, err
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(dec, data); err != nil {
		return nil, fmt.Errorf("%w: truncated binary payload: %v", ErrMalformed, err)
	}

	return data, nil
}

func (f *File) zlibPayload(b64 string) ([]byte, error) {
	// The first header word gives the block count; with it the full size
	// of the separately encoded header block is known.
	dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(b64))

	blocks, err := f.readHeaderWord(dec)
	if err != nil {
		return nil, err
	}

	if blocks == 0 {
		return nil, nil
	}

	headerWords := 3 + int(blocks)
	headerBytes := headerWords * f.headerSize()
	headerEnc := base64.StdEncoding.EncodedLen(headerBytes)

	if headerEnc > len(b64) {
		return nil, fmt.Errorf("%w: truncated compression header", ErrMalformed)
	}

	header := make([]byte, headerBytes)

	dec = base64.NewDecoder(base64.StdEncoding, strings.NewReader(b64[:headerEnc]))
	if _, err := io.ReadFull(dec, header); err != nil {
		return nil, fmt.Errorf("%w: truncated compression header: %v", ErrMalformed, err)
	}

	sizes := make([]uint64, blocks)
	for i := range sizes {
		sizes[i] = f.headerWordAt(header, 3+i)
	}

	payload := base64.NewDecoder(base64.StdEncoding, strings.NewReader(b64[headerEnc:]))

	var out bytes.Buffer

	for i, csize := range sizes {
		comp := make([]byte, csize)
		if _, err := io.ReadFull(payload, comp); err != nil {
			return nil, fmt.Errorf("%w: truncated compressed block %d: %v", ErrMalformed, i, err)
		}

		zr, err := zlib.NewReader(bytes.NewReader(comp))
		if err != nil {
			return nil, fmt.Errorf("%w: bad zlib block %d: %v", ErrMalformed, i, err)
		}

		if _, err := io.Copy(&out, zr); err != nil {
			zr.Close()
			return nil, fmt.Errorf("%w: bad zlib block %d: %v", ErrMalformed, i, err)
		}

		if err := zr.Close(); err != nil {
			return nil, fmt.Errorf("%w: bad zlib block %d: %v", ErrMalformed, i, err)
		}
	}

	return out.Bytes(), nil
}

func (f *File) readHeaderWord(r io.Reader) (uint64, error) {
	buf := make([]byte, f.headerSize())
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, fmt.Errorf("%w: truncated binary header: %v", ErrMalformed, err)
	}

	return f.headerWordAt(buf, 0), nil
}

func (f *File) headerWordAt(buf []byte, i int) uint64 {
	size := f.headerSize()
	word := buf[i*size : (i+1)*size]

	if size == 4 {
		return uint64(f.byteOrder().Uint32(word))
	}

	return f.byteOrder().Uint64(word)
}

func bytesToFloats(raw []byte, typ string, size int, order binary.ByteOrder) ([]float64, error) {
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %d payload bytes not divisible by %s width %d",
			ErrMalformed, len(raw), typ, size)
	}

	n := len(raw) / size
	values := make([]float64, n)

	for i := 0; i < n; i++ {
		word := raw[i*size : (i+1)*size]

		switch typ {
		case "Float64":
			values[i] = math.Float64frombits(order.Uint64(word))
		case "Float32":
			values[i] = float64(math.Float32frombits(order.Uint32(word)))
		case "Int8":
			values[i] = float64(int8(word[0]))
		case "UInt8":
			values[i] = float64(word[0])
		case "Int16":
			values[i] = float64(int16(order.Uint16(word)))
		case "UInt16":
			values[i] = float64(order.Uint16(word))
		case "Int32":
			values[i] = float64(int32(order.Uint32(word)))
		case "UInt32":
			values[i] = float64(order.Uint32(word))
		case "Int64":
			values[i] = float64(int64(order.Uint64(word)))
		case "UInt64":
			values[i] = float64(order.Uint64(word))
		default:
			return nil, fmt.Errorf("%w: data type %s", ErrNotNumeric, typ)
		}
	}

	return values, nil
}
