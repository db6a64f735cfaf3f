package artifacts_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
)

func TestReadSchema(t *testing.T) {
	schema, err := artifacts.ReadSchema(strings.NewReader("feature_name\nTime\nV1\nAmount\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Time", "V1", "Amount"}, schema.Names())
	assert.Equal(t, 3, schema.Len())

	i, ok := schema.Index("Amount")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = schema.Index("MerchantId")
	assert.False(t, ok)
}

func TestReadSchemaIgnoresExtraColumns(t *testing.T) {
	schema, err := artifacts.ReadSchema(strings.NewReader(",feature_name\n0,Time\n1,Amount\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Amount"}, schema.Names())
}

func TestReadSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "feature_name\n"},
		{"missing column", "name\nTime\n"},
		{"duplicate", "feature_name\nTime\nTime\n"},
		{"blank", "feature_name\nTime\n\"  \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := artifacts.ReadSchema(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	schema, err := artifacts.NewSchema([]string{"Time", "V1", "Amount"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, artifacts.WriteSchema(&buf, schema))

	back, err := artifacts.ReadSchema(&buf)
	require.NoError(t, err)
	assert.Equal(t, schema.Names(), back.Names())
}

func TestNamesReturnsCopy(t *testing.T) {
	schema, err := artifacts.NewSchema([]string{"Time", "Amount"})
	require.NoError(t, err)

	names := schema.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"Time", "Amount"}, schema.Names())
}
