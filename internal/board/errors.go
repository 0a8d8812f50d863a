package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. FENError wraps one of the field-specific causes and
// ErrInvalidFEN, so both can be matched with errors.Is.
var (
	ErrInvalidFEN  = errors.New("invalid FEN string")
	ErrFieldCount  = errors.New("missing field")
	ErrRankCount   = errors.New("need 8 ranks")
	ErrRankWidth   = errors.New("rank does not cover 8 files")
	ErrPieceLetter = errors.New("unknown piece letter")
	ErrPawnRank    = errors.New("pawn on first or last rank")
	ErrKingCount   = errors.New("more than one king per side")
	ErrTurn        = errors.New("side to move must be w or b")
	ErrCastling    = errors.New("castling rights must be a subset of KQkq or -")
	ErrEnPassant   = errors.New("en passant must be a file a-h or -")

	// ErrHistoryUnderflow is the panic value of Restore on an empty stack.
	ErrHistoryUnderflow = errors.New("history restore with empty stack")
)

// FENField names the part of a FEN string an error refers to.
type FENField string

const (
	FieldRecord    FENField = "record"
	FieldBoard     FENField = "board"
	FieldTurn      FENField = "turn"
	FieldCastling  FENField = "castling"
	FieldEnPassant FENField = "en passant"
)

// FENError reports a rejected FEN string together with the offending field
// and the text that failed.
type FENError struct {
	Field FENField
	Value string
	Err   error
}

// Error formats the field, offending text and cause.
func (e *FENError) Error() string {
	return fmt.Sprintf("%v: %s field %q: %v", ErrInvalidFEN, e.Field, e.Value, e.Err)
}

// Unwrap exposes both ErrInvalidFEN and the specific cause.
func (e *FENError) Unwrap() []error {
	return []error{ErrInvalidFEN, e.Err}
}

func fenError(field FENField, value string, err error) error {
	return &FENError{Field: field, Value: value, Err: err}
}
