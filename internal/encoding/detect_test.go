package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte(`[{"firstName":"Inês","department":"Operações"}]`),
			want:  `[{"firstName":"Inês","department":"Operações"}]`,
		},
		{
			// Windows-1252: ç = 0xE7, ã = 0xE3
			name:  "Latin1",
			input: []byte{'"', 'A', 'u', 'd', 'i', 0xE7, 0xE3, 'o', '"'},
			want:  `"Audição"`,
		},
		{
			name:  "UTF8BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"data":[]}`)...),
			want:  `{"data":[]}`,
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestForContentType(t *testing.T) {
	latin1 := []byte{'{', '"', 'n', '"', ':', '"', 'J', 'o', 0xE3, 'o', '"', '}'}

	tests := []struct {
		name        string
		contentType string
		input       []byte
		want        string
	}{
		{
			name:        "DeclaredLatin1",
			contentType: "application/json; charset=ISO-8859-1",
			input:       latin1,
			want:        `{"n":"João"}`,
		},
		{
			name:        "DeclaredUTF8StripsBOM",
			contentType: "application/json; charset=utf-8",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"n":"João"}`)...),
			want:        `{"n":"João"}`,
		},
		{
			name:        "NoCharsetSniffs",
			contentType: "application/json",
			input:       []byte(`[{"n":"Café"}]`),
			want:        `[{"n":"Café"}]`,
		},
		{
			name:        "UnknownCharsetSniffs",
			contentType: "application/json; charset=x-unknown",
			input:       []byte(`[]`),
			want:        `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.ForContentType(bytes.NewReader(tt.input), tt.contentType)
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
