package manifest

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec string
		want Entry
	}{
		{
			spec: "tensor?name=3&rank=2&elem=float",
			want: Entry{Kind: KindTensor, Name: "3", Rank: 2, Elem: "float"},
		},
		{
			spec: "tensor?name=x&rank=4&elem=int&shape=1&shape=2&shape=3&shape=4",
			want: Entry{Kind: KindTensor, Name: "x", Rank: 4, Elem: "int", Shape: []int{1, 2, 3, 4}},
		},
		{
			spec: "tensor?name=x&rank=4&elem=int&shape=1,2,3,4",
			want: Entry{Kind: KindTensor, Name: "x", Rank: 4, Elem: "int", Shape: []int{1, 2, 3, 4}},
		},
		{
			spec: "scalar?name=y&scalar=float64",
			want: Entry{Kind: KindScalar, Name: "y", Scalar: "float64"},
		},
		{
			spec: "kind=shape&name=s&rank=3",
			want: Entry{Kind: KindShape, Name: "s", Rank: 3},
		},
		{
			spec: "other?name=cfg&expr=Option%3CTensor%3CB%2C%201%3E%3E",
			want: Entry{Kind: KindOther, Name: "cfg", Expr: "Option<Tensor<B, 1>>"},
		},
		{
			spec: "shape?name=s&rank=2&kind=shape",
			want: Entry{Kind: KindShape, Name: "s", Rank: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpec_Errors(t *testing.T) {
	tests := []struct {
		spec    string
		wantMsg string
	}{
		{"tensor?name=x&rank=two&elem=int", "rank"},
		{"tensor?name=x&dims=2", "dims"},
		{"tensor?name=x&kind=scalar", "conflicts"},
		{"tensor?name=x;rank=2", "parse spec"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseSpec(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseSpec_EmptyShapeDimension(t *testing.T) {
	for _, spec := range []string{
		"tensor?name=x&rank=2&elem=float&shape=1,,2",
		"tensor?name=x&rank=2&elem=float&shape=",
		"tensor?name=x&rank=2&elem=float&shape=1,2,",
		"tensor?name=x&rank=2&elem=float&shape=1&shape=",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseSpec(spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "empty shape dimension")
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestParseSpecs(t *testing.T) {
	m, err := ParseSpecs([]string{"shape?name=s&rank=1", "scalar?name=n&scalar=int64"})
	require.NoError(t, err)
	require.Len(t, m.Types, 2)
	assert.Equal(t, "s", m.Types[0].Name)
	assert.Equal(t, "n", m.Types[1].Name)

	_, err = ParseSpecs([]string{"shape?name=s&rank=x"})
	assert.Error(t, err)
}
