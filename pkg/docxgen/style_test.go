package docxgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		name string
		ctx  StyleContext
		want RunStyle
	}{
		{
			name: "empty",
			ctx:  StyleContext{},
			want: RunStyle{},
		},
		{
			name: "flags pass through",
			ctx:  StyleContext{Bold: true, Italic: true, Strike: true, Subscript: true},
			want: RunStyle{Bold: true, Italic: true, Strike: true, Subscript: true},
		},
		{
			name: "color normalised",
			ctx:  StyleContext{Color: " #a1b2c3 "},
			want: RunStyle{Color: "A1B2C3"},
		},
		{
			name: "auto color",
			ctx:  StyleContext{Color: "AUTO"},
			want: RunStyle{Color: "auto"},
		},
		{
			name: "underline none is no underline",
			ctx:  StyleContext{Underline: "none"},
			want: RunStyle{},
		},
		{
			name: "size kept in half points",
			ctx:  StyleContext{Size: 24},
			want: RunStyle{Size: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStyle(tt.ctx)
			assert.Equal(t, tt.want, got)
			// Pure: the same input resolves the same way again
			assert.Equal(t, got, ResolveStyle(tt.ctx))
		})
	}
}

func TestRunStyle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		style   RunStyle
		wantErr bool
	}{
		{name: "zero", style: RunStyle{}},
		{name: "full", style: RunStyle{Bold: true, Underline: "wave", Color: "00FF00", Size: 48}},
		{name: "auto color", style: RunStyle{Color: "auto"}},
		{name: "super and sub", style: RunStyle{Superscript: true, Subscript: true}, wantErr: true},
		{name: "short color", style: RunStyle{Color: "FFF"}, wantErr: true},
		{name: "lowercase color", style: RunStyle{Color: "ff0000"}, wantErr: true},
		{name: "named color", style: RunStyle{Color: "red"}, wantErr: true},
		{name: "unknown underline", style: RunStyle{Underline: "squiggle"}, wantErr: true},
		{name: "negative size", style: RunStyle{Size: -2}, wantErr: true},
		{name: "huge size", style: RunStyle{Size: maxHalfPoints + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.style.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleContext_WithProps(t *testing.T) {
	base := StyleContext{Bold: true}

	derived, err := base.withProps(Props{PropItalic: true, PropUnderline: true, PropSize: 12})
	require.NoError(t, err)
	assert.Equal(t, StyleContext{Bold: true, Italic: true, Underline: "single", Size: 24}, derived)
	// The receiver is a value and stays as it was
	assert.Equal(t, StyleContext{Bold: true}, base)

	_, err = base.withProps(Props{PropColor: 0xFF0000})
	assert.Error(t, err)
	_, err = base.withProps(Props{PropUnderline: 1})
	assert.Error(t, err)
	_, err = base.withProps(Props{PropSize: "12pt"})
	assert.Error(t, err)
	_, err = base.withProps(Props{PropSize: 0})
	assert.Error(t, err)

	// Unknown properties are ignored
	same, err := base.withProps(Props{"data-id": "x"})
	require.NoError(t, err)
	assert.Equal(t, base, same)
}

func TestStyleContext_WithKind(t *testing.T) {
	var ctx StyleContext
	ctx = ctx.withKind(KindBold).withKind(KindUnderline).withKind(KindSuperscript)
	assert.Equal(t, StyleContext{Bold: true, Underline: "single", Superscript: true}, ctx)

	// Non-formatting kinds leave the context alone
	assert.Equal(t, ctx, ctx.withKind(KindText))
}
