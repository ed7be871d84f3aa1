package vtu

import (
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// XML document model. Attribute names follow the VTK XML file format;
// string-valued arrays appear as <Array> rather than <DataArray>
// elements and are kept so non-numeric lookups can be diagnosed.
type vtkFile struct {
	XMLName    xml.Name         `xml:"VTKFile"`
	Type       string           `xml:"type,attr"`
	ByteOrder  string           `xml:"byte_order,attr"`
	HeaderType string           `xml:"header_type,attr"`
	Compressor string           `xml:"compressor,attr"`
	Grid       unstructuredGrid `xml:"UnstructuredGrid"`
	Appended   *appendedData    `xml:"AppendedData"`
}

type unstructuredGrid struct {
	Pieces []piece `xml:"Piece"`
}

type piece struct {
	NumberOfPoints string     `xml:"NumberOfPoints,attr"`
	NumberOfCells  string     `xml:"NumberOfCells,attr"`
	PointData      arrayGroup `xml:"PointData"`
	CellData       arrayGroup `xml:"CellData"`
}

type arrayGroup struct {
	DataArrays   []dataArray `xml:"DataArray"`
	StringArrays []dataArray `xml:"Array"`
}

type dataArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr"`
	Components string `xml:"NumberOfComponents,attr"`
	Format     string `xml:"format,attr"`
	Offset     string `xml:"offset,attr"`
	Value      string `xml:",chardata"`
}

type appendedData struct {
	Encoding string `xml:"encoding,attr"`
	Value    string `xml:",chardata"`
}

// File is a parsed .vtu document. Arrays are decoded lazily on lookup.
type File struct {
	path string
	doc  vtkFile
}

// Open reads and parses a .vtu file. Files with any other extension are
// rejected before reading.
func Open(path string) (*File, error) {
	if !strings.HasSuffix(path, ".vtu") {
		return nil, fmt.Errorf("%w: %q (only .vtu files are supported)", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vtu: reading %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("vtu: %s: %w", path, err)
	}

	f.path = path

	return f, nil
}

// Parse parses .vtu content from memory.
func Parse(data []byte) (*File, error) {
	var doc vtkFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if doc.Type != "UnstructuredGrid" {
		return nil, fmt.Errorf("%w: VTKFile type %q, want UnstructuredGrid", ErrUnsupportedFormat, doc.Type)
	}

	return &File{doc: doc}, nil
}

// Path returns the file path, or "" for in-memory documents.
func (f *File) Path() string { return f.path }

// Lookup resolves the named array, searching point data first and cell
// data second.
func (f *File) Lookup(name string) (*Array, error) {
	arr, err := f.LookupIn(PointData, name)
	if err == nil || !errors.Is(err, ErrArrayNotFound) {
		return arr, err
	}

	arr, err = f.LookupIn(CellData, name)
	if errors.Is(err, ErrArrayNotFound) {
		return nil, fmt.Errorf("%w: %q (searched point and cell data)", ErrArrayNotFound, name)
	}

	return arr, err
}

// LookupIn resolves the named array from the given storage class only.
func (f *File) LookupIn(class StorageClass, name string) (*Array, error) {
	for _, p := range f.doc.Grid.Pieces {
		group := p.PointData
		if class == CellData {
			group = p.CellData
		}

		for _, da := range group.DataArrays {
			if da.Name == name {
				return f.decodeArray(da, class)
			}
		}

		for _, da := range group.StringArrays {
			if da.Name == name {
				return nil, fmt.Errorf("%w: %q has data type %s", ErrNotNumeric, name, da.Type)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q (searched %s data)", ErrArrayNotFound, name, class)
}

func (f *File) decodeArray(da dataArray, class StorageClass) (*Array, error) {
	size, ok := typeSizes[da.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q has data type %s", ErrNotNumeric, da.Name, da.Type)
	}

	components := 1

	if da.Components != "" {
		n, err := strconv.Atoi(strings.TrimSpace(da.Components))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: array %q: bad NumberOfComponents %q", ErrMalformed, da.Name, da.Components)
		}

		components = n
	}

	var (
		values []float64
		err    error
	)

	switch da.Format {
	case "", "ascii":
		values, err = decodeASCII(da.Value)
	case "binary":
		values, err = f.decodeBinaryValues(da.Value, da.Type, size)
	case "appended":
		var chunk string

		chunk, err = f.appendedAt(da.Offset)
		if err == nil {
			values, err = f.decodeBinaryValues(chunk, da.Type, size)
		}
	default:
		err = fmt.Errorf("%w: array %q: unknown format %q", ErrMalformed, da.Name, da.Format)
	}

	if err != nil {
		return nil, fmt.Errorf("vtu: array %q: %w", da.Name, err)
	}

	if len(values)%components != 0 {
		return nil, fmt.Errorf("%w: array %q: %d values not divisible by %d components",
			ErrMalformed, da.Name, len(values), components)
	}

	return &Array{
		name:       da.Name,
		class:      class,
		dtype:      da.Type,
		components: components,
		data:       values,
	}, nil
}

// typeSizes maps VTK numeric type names to their byte width. Types not
// listed here (String, Bit, ...) are treated as non-numeric.
var typeSizes = map[string]int{
	"Float32": 4,
	"Float64": 8,
	"Int8":    1,
	"UInt8":   1,
	"Int16":   2,
	"UInt16":  2,
	"Int32":   4,
	"UInt32":  4,
	"Int64":   8,
	"UInt64":  8,
}

func decodeASCII(text string) ([]float64, error) {
	fields := strings.Fields(text)
	values := make([]float64, len(fields))

	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad ascii value %q", ErrMalformed, field)
		}

		values[i] = v
	}

	return values, nil
}

func (f *File) byteOrder() binary.ByteOrder {
	if f.doc.ByteOrder == "BigEndian" {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func (f *File) headerSize() int {
	if f.doc.HeaderType == "UInt32" {
		return 4
	}

	// VTK writes UInt64 headers by default.
	return 8
}

// appendedAt returns the appended-data stream starting at the given
// encoded byte offset.
func (f *File) appendedAt(offsetAttr string) (string, error) {
	if f.doc.Appended == nil {
		return "", fmt.Errorf("%w: appended array without AppendedData section", ErrMalformed)
	}

	if f.doc.Appended.Encoding != "base64" {
		return "", fmt.Errorf("%w: AppendedData encoding %q (only base64 is supported)",
			ErrMalformed, f.doc.Appended.Encoding)
	}

	offset, err := strconv.Atoi(strings.TrimSpace(offsetAttr))
	if err != nil || offset < 0 {
		return "", fmt.Errorf("%w: bad appended offset %q", ErrMalformed, offsetAttr)
	}

	payload := f.doc.Appended.Value

	idx := strings.IndexByte(payload, '_')
	if idx < 0 {
		return "", fmt.Errorf("%w: AppendedData without leading underscore", ErrMalformed)
	}

	payload = stripSpace(payload[idx+1:])
	if offset > len(payload) {
		return "", fmt.Errorf("%w: appended offset %d beyond data end %d", ErrMalformed, offset, len(payload))
	}

	return payload[offset:], nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		default:
			return r
		}
	}, s)
}
