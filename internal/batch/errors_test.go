package batch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/slp2graph/internal/datamap"
)

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ArchiveError{Archive: "a.zip", Err: errors.New("zip: not a valid zip file")}, "archive"},
		{&DecodeError{Archive: "a.zip", Entry: "x.slp", Err: errors.New("bad")}, "decode"},
		{&DuplicateError{Archive: "b.zip", Entry: "y.slp", Digest: "ab12"}, "duplicate"},
		{fmt.Errorf("wrapped: %w", &datamap.ExtractionFieldError{Table: "Player", Field: "team", Err: datamap.ErrAbsent}), "extraction"},
		{errors.New("boom"), "other"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Reason(tc.err), tc.err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "archive a.zip: eof", (&ArchiveError{Archive: "a.zip", Err: errors.New("eof")}).Error())
	assert.Equal(t, "decoding x.slp in a.zip: bad", (&DecodeError{Archive: "a.zip", Entry: "x.slp", Err: errors.New("bad")}).Error())
	assert.Equal(t, "y.slp in b.zip duplicates a replay converted earlier (sha256 ab12)",
		(&DuplicateError{Archive: "b.zip", Entry: "y.slp", Digest: "ab12"}).Error())

	inner := errors.New("disk full")
	err := &WriteError{Game: 3, Err: inner}
	assert.Equal(t, "writing game 3: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}
