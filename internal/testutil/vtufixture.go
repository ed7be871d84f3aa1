package testutil

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// VTUArray describes one data array of a fixture file.
type VTUArray struct {
	Name       string
	Type       string // VTK type name, e.g. "Float64"; defaults to Float64
	Components int    // defaults to 1
	Values     []float64
	Cell       bool   // place in CellData instead of PointData
	Format     string // "ascii" (default), "binary" or "appended"

	// StringValue marks the array as a non-numeric <Array type="String">
	// element with this literal content.
	StringValue string
}

// VTUOptions control file-level fixture properties.
type VTUOptions struct {
	Compressed bool // zlib-compress binary and appended arrays
	BigEndian  bool
}

// WriteVTU writes a fixture .vtu file into dir and returns its path.
func WriteVTU(t *testing.T, dir, name string, arrays []VTUArray, opts VTUOptions) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildVTU(arrays, opts), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}

	return path
}

// BuildVTU assembles the XML document for the given arrays.
func BuildVTU(arrays []VTUArray, opts VTUOptions) []byte {
	var (
		points, cells  strings.Builder
		appended       strings.Builder
		appendedOffset int
	)

	for _, a := range arrays {
		target := &points
		if a.Cell {
			target = &cells
		}

		if a.StringValue != "" {
			fmt.Fprintf(target, "      <Array type=\"String\" Name=%q format=\"ascii\">%s</Array>\n",
				a.Name, a.StringValue)
			continue
		}

		typ := a.Type
		if typ == "" {
			typ = "Float64"
		}

		components := a.Components
		if components == 0 {
			components = 1
		}

		format := a.Format
		if format == "" {
			format = "ascii"
		}

		var attrs strings.Builder

		fmt.Fprintf(&attrs, "type=%q Name=%q format=%q", typ, a.Name, format)

		if components != 1 {
			fmt.Fprintf(&attrs, " NumberOfComponents=\"%d\"", components)
		}

		var body string

		switch format {
		case "ascii":
			body = asciiBody(typ, a.Values)
		case "binary":
			body = encodeBlock(payloadBytes(typ, a.Values, opts), opts)
		case "appended":
			chunk := encodeBlock(payloadBytes(typ, a.Values, opts), opts)
			fmt.Fprintf(&attrs, " offset=\"%d\"", appendedOffset)
			appended.WriteString(chunk)
			appendedOffset += len(chunk)
		default:
			panic("testutil: unknown fixture format " + format)
		}

		fmt.Fprintf(target, "      <DataArray %s>%s</DataArray>\n", attrs.String(), body)
	}

	byteOrder := "LittleEndian"
	if opts.BigEndian {
		byteOrder = "BigEndian"
	}

	compressor := ""
	if opts.Compressed {
		compressor = " compressor=\"vtkZLibDataCompressor\""
	}

	var doc bytes.Buffer

	fmt.Fprintf(&doc, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(&doc, "<VTKFile type=\"UnstructuredGrid\" version=\"1.0\" byte_order=%q header_type=\"UInt64\"%s>\n",
		byteOrder, compressor)
	fmt.Fprintf(&doc, "  <UnstructuredGrid>\n")
	fmt.Fprintf(&doc, "    <Piece NumberOfPoints=\"0\" NumberOfCells=\"0\">\n")
	fmt.Fprintf(&doc, "      <PointData>\n%s      </PointData>\n", points.String())
	fmt.Fprintf(&doc, "      <CellData>\n%s      </CellData>\n", cells.String())
	fmt.Fprintf(&doc, "    </Piece>\n")
	fmt.Fprintf(&doc, "  </UnstructuredGrid>\n")

	if appended.Len() > 0 {
		fmt.Fprintf(&doc, "  <AppendedData encoding=\"base64\">_%s</AppendedData>\n", appended.String())
	}

	fmt.Fprintf(&doc, "</VTKFile>\n")

	return doc.Bytes()
}

func asciiBody(typ string, values []float64) string {
	fields := make([]string, len(values))

	for i, v := range values {
		switch typ {
		case "Float32", "Float64":
			fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			fields[i] = strconv.FormatInt(int64(v), 10)
		}
	}

	return strings.Join(fields, " ")
}

// payloadBytes serializes values as the given VTK type.
func payloadBytes(typ string, values []float64, opts VTUOptions) []byte {
	var order binary.ByteOrder = binary.LittleEndian
	if opts.BigEndian {
		order = binary.BigEndian
	}

	var buf bytes.Buffer

	for _, v := range values {
		switch typ {
		case "Float64":
			binary.Write(&buf, order, math.Float64bits(v))
		case "Float32":
			binary.Write(&buf, order, math.Float32bits(float32(v)))
		case "Int8":
			buf.WriteByte(byte(int8(v)))
		case "UInt8":
			buf.WriteByte(byte(uint8(v)))
		case "Int16":
			binary.Write(&buf, order, int16(v))
		case "UInt16":
			binary.Write(&buf, order, uint16(v))
		case "Int32":
			binary.Write(&buf, order, int32(v))
		case "UInt32":
			binary.Write(&buf, order, uint32(v))
		case "Int64":
			binary.Write(&buf, order, int64(v))
		case "UInt64":
			binary.Write(&buf, order, uint64(v))
		default:
			panic("testutil: unknown fixture type " + typ)
		}
	}

	return buf.Bytes()
}

// encodeBlock encodes one payload the way the reader expects it:
// uncompressed as base64(header || data), zlib-compressed as
// base64(header block) followed by base64(compressed data), single block.
func encodeBlock(payload []byte, opts VTUOptions) string {
	var order binary.ByteOrder = binary.LittleEndian
	if opts.BigEndian {
		order = binary.BigEndian
	}

	if !opts.Compressed {
		var buf bytes.Buffer

		binary.Write(&buf, order, uint64(len(payload)))
		buf.Write(payload)

		return base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	var comp bytes.Buffer

	zw := zlib.NewWriter(&comp)
	zw.Write(payload)
	zw.Close()

	var header bytes.Buffer

	binary.Write(&header, order, uint64(1))             // block count
	binary.Write(&header, order, uint64(len(payload)))  // block size
	binary.Write(&header, order, uint64(len(payload)))  // last block size
	binary.Write(&header, order, uint64(comp.Len()))    // compressed size

	return base64.StdEncoding.EncodeToString(header.Bytes()) +
		base64.StdEncoding.EncodeToString(comp.Bytes())
}
