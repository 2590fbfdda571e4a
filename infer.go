package croissant

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// DataType is the semantic scalar type of a Field.
type DataType string

const (
	Text    DataType = "sc:Text"
	Boolean DataType = "sc:Boolean"
	Integer DataType = "sc:Integer"
	Float   DataType = "sc:Float"
)

// DataTypes lists every DataType InferType can return.
func DataTypes() []DataType { return []DataType{Text, Boolean, Integer, Float} }

// InferType maps one sample value to a DataType. Rules are tried in order and
// the first match wins, so an integer-looking sample never reaches the float
// rule. Empty samples are Text.
func InferType(sample string) DataType {
	s := strings.TrimSpace(sample)
	switch {
	case s == "":
		return Text
	case isBool(s):
		return Boolean
	case isInteger(s):
		return Integer
	case isFloat(s):
		return Float
	default:
		return Text
	}
}

func isBool(s string) bool {
	l := strings.ToLower(s)
	return l == "true" || l == "false"
}

// isInteger accepts an optional sign followed by decimal digits of any length.
func isInteger(s string) bool {
	_, ok := new(big.Int).SetString(s, 10)
	return ok
}

// isFloat accepts decimal and exponent notation plus inf/nan spellings.
// Magnitudes that overflow float64 still count as floats.
func isFloat(s string) bool {
	if strings.ContainsAny(s, "xX_") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return true
	}
	var ne *strconv.NumError
	return errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange)
}
