package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Dot", input: "1234.56", want: "1234.56"},
		{name: "European", input: "1.234,56", want: "1234.56"},
		{name: "NegativeComma", input: "-588,74", want: "-588.74"},
		{name: "ThousandsComma", input: "1,234,567", want: "1234567"},
		{name: "SingleDecimal", input: "10,5", want: "10.5"},
		{name: "Spaces", input: " 1 500 ", want: "1500"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAmount_JSON(t *testing.T) {
	var v struct {
		A money.Amount `json:"a"`
		B money.Amount `json:"b"`
		C money.Amount `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":12.5,"b":"1500","c":null}`), &v))
	assert.Equal(t, "12.5", v.A.String())
	assert.Equal(t, "1500", v.B.String())
	assert.True(t, v.C.IsZero())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12.5,"b":1500,"c":0}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"twelve"}`), &v))
}

func TestSum(t *testing.T) {
	got := money.Sum(money.FromFloat(0.1), money.FromFloat(0.2), money.FromInt(-1))
	assert.Equal(t, "-0.70", got.Format())
	assert.Equal(t, "0.00", money.Sum().Format())
}
