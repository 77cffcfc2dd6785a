package hpf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// DataType describes the wire representation of one channel's raw samples.
type DataType struct {
	Name   string // canonical lower-case name
	Size   int    // atom size in bytes
	Signed bool
	Float  bool
}

// ParseDataType interprets a declared datatype string, case-insensitively.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(s) {
	case "int16":
		return DataType{Name: "int16", Size: 2, Signed: true}, nil
	case "uint16":
		return DataType{Name: "uint16", Size: 2}, nil
	case "int32":
		return DataType{Name: "int32", Size: 4, Signed: true}, nil
	case "float":
		return DataType{Name: "float", Size: 4, Signed: true, Float: true}, nil
	case "double":
		return DataType{Name: "double", Size: 8, Signed: true, Float: true}, nil
	default:
		return DataType{}, fmt.Errorf("%w: %q", ErrBadDataType, s)
	}
}

func (dt DataType) String() string {
	return dt.Name
}

// decodeSamples appends the raw samples packed in data to dst, widened to
// float64 without scaling. len(data) must be a multiple of the atom size.
func (dt DataType) decodeSamples(dst []float64, data []byte) []float64 {
	switch {
	case dt.Float && dt.Size == 4:
		for i := 0; i+4 <= len(data); i += 4 {
			dst = append(dst, float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))))
		}
	case dt.Float && dt.Size == 8:
		for i := 0; i+8 <= len(data); i += 8 {
			dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(data[i:])))
		}
	case dt.Size == 2 && dt.Signed:
		for i := 0; i+2 <= len(data); i += 2 {
			dst = append(dst, float64(int16(binary.LittleEndian.Uint16(data[i:]))))
		}
	case dt.Size == 2:
		for i := 0; i+2 <= len(data); i += 2 {
			dst = append(dst, float64(binary.LittleEndian.Uint16(data[i:])))
		}
	case dt.Size == 4:
		for i := 0; i+4 <= len(data); i += 4 {
			dst = append(dst, float64(int32(binary.LittleEndian.Uint32(data[i:]))))
		}
	}
	return dst
}
