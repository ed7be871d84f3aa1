// Package vtu resolves named data arrays from VTK XML unstructured grid
// (.vtu) files into numeric tuple arrays. Lookup searches point data
// first and falls back to cell data; values are widened to float64.
// Supported encodings are inline ascii, inline base64 (raw or
// zlib-compressed) and base64 appended data.
package vtu
