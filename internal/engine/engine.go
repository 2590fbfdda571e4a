package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SyntaxError is the driver-neutral form of a JSON syntax error. Offset is the
// byte offset reported by the underlying decoder (-1 when unknown).
type SyntaxError struct {
	Msg    string
	Offset int64
}

func (e *SyntaxError) Error() string { return e.Msg }

// ErrExtraData reports input remaining after the top-level value.
var ErrExtraData = errors.New("extra data after top-level value")

// DecodeAnyFromSource builds an "any" value from the streaming token source.
// Numbers are kept as json.Number.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	return decodeAnyFromSourceWithConv(src, func(s string) (any, error) { return json.Number(s), nil })
}

type numberConv func(string) (any, error)

// DecodeAnyFromSourceAsFloat64 builds an "any" tree but decodes numbers as float64.
func DecodeAnyFromSourceAsFloat64(src TokenSource) (any, error) {
	return decodeAnyFromSourceWithConv(src, func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}

func decodeAnyFromSourceWithConv(src TokenSource, conv numberConv) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	v, err := decodeValueWithConv(src, tok, conv)
	if err != nil {
		return nil, err
	}
	// exactly one top-level value
	if extra, err := src.NextToken(); err == nil {
		return nil, &SyntaxError{Msg: ErrExtraData.Error(), Offset: extra.Offset}
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

func decodeValueWithConv(src TokenSource, tok Token, conv numberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObjectWithConv(src, conv)
	case KindBeginArray:
		return decodeArrayWithConv(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObjectWithConv(src TokenSource, conv numberConv) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		v, err := decodeValueWithConv(src, vt, conv)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArrayWithConv(src TokenSource, conv numberConv) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValueWithConv(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// unexpectedEOF turns a clean EOF inside a value into io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
