package docxgen

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "node error",
			err:  newNodeError(UnsupportedElementKind, "Document/Table[0]", Element("Table", nil), "unknown element kind %q", "Table"),
			want: `reconcile: unsupported element kind at 'Document/Table[0]': unknown element kind "Table"`,
		},
		{
			name: "stage error with cause",
			err:  newError(IOError, "publish", "/tmp/out.docx", io.ErrShortWrite, "failed to write temporary file"),
			want: "publish: io error at '/tmp/out.docx': failed to write temporary file: short write",
		},
		{
			name: "bare kind",
			err:  &Error{Kind: PackagingError},
			want: "packaging error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	err := newError(SerializationError, "serialize", "Block[0]/Run[0]", nil, "inconsistent run style")
	wrapped := fmt.Errorf("building report: %w", err)

	assert.True(t, errors.Is(wrapped, ErrSerialization))
	assert.False(t, errors.Is(wrapped, ErrPackaging))
	assert.False(t, errors.Is(wrapped, ErrInvalidStructure))
	assert.True(t, IsKind(wrapped, SerializationError))
	assert.Equal(t, SerializationError, KindOf(wrapped))

	// A populated error is not a sentinel for other populated errors
	other := newError(SerializationError, "serialize", "Block[1]", nil, "x")
	assert.False(t, errors.Is(err, other))

	assert.Equal(t, ErrorKind(0), KindOf(io.EOF))
}

func TestError_Unwrap(t *testing.T) {
	err := newError(IOError, "publish", "out.docx", io.ErrUnexpectedEOF, "failed")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.True(t, errors.Is(err, ErrIO))
}

func TestError_Node(t *testing.T) {
	node := Text("offending")
	err := newNodeError(InvalidStructure, "Document/Text[0]", node, "bad")

	var rerr *Error
	assert.True(t, errors.As(err, &rerr))
	assert.Equal(t, "reconcile", rerr.Op)
	assert.Equal(t, `Text("offending")`, rerr.Node.String())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "unsupported element kind", UnsupportedElementKind.String())
	assert.Equal(t, "invalid structure", InvalidStructure.String())
	assert.Equal(t, "unknown error", ErrorKind(99).String())
}
