package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaApply(t *testing.T) {
	schema := Schema{
		{Name: "name", Rules: []Rule{Trim, MinLength(3, "name too short"), MaxLength(10, "name too long"), Escape}},
		{Name: "price", Rules: []Rule{Trim, Float(decimal.Zero, "price must be a positive number")}},
		{Name: "quantity", Rules: []Rule{Trim, Int(0, "quantity must be a positive integer")}},
	}

	testCases := []struct {
		name           string
		input          Input
		expectedValues Values
		expectedErrors Errors
	}{
		{
			name:  "Valid input is sanitized",
			input: Input{"name": "  Tom & Jerry ", "price": " 12.50 ", "quantity": "3"},
			expectedValues: Values{
				"name":     "Tom &amp; Jerry",
				"price":    "12.5",
				"quantity": "3",
			},
		},
		{
			name:  "Every field failure is reported",
			input: Input{"name": " ab ", "price": "-1", "quantity": "1.5"},
			expectedValues: Values{
				"name":     "ab",
				"price":    "-1",
				"quantity": "1.5",
			},
			expectedErrors: Errors{
				{Field: "name", Message: "name too short"},
				{Field: "price", Message: "price must be a positive number"},
				{Field: "quantity", Message: "quantity must be a positive integer"},
			},
		},
		{
			name:  "Absent fields are empty",
			input: Input{},
			expectedValues: Values{
				"name":     "",
				"price":    "",
				"quantity": "",
			},
			expectedErrors: Errors{
				{Field: "name", Message: "name too short"},
				{Field: "price", Message: "price must be a positive number"},
				{Field: "quantity", Message: "quantity must be a positive integer"},
			},
		},
		{
			name:  "Length is checked before escaping",
			input: Input{"name": "<b>x</b>"},
			expectedValues: Values{
				"name":     "&lt;b&gt;x&lt;&#x2F;b&gt;",
				"price":    "",
				"quantity": "",
			},
			expectedErrors: Errors{
				{Field: "price", Message: "price must be a positive number"},
				{Field: "quantity", Message: "quantity must be a positive integer"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values, errs := schema.Apply(tc.input)
			assert.Equal(t, tc.expectedValues, values)
			assert.Equal(t, tc.expectedErrors, errs)
		})
	}
}

func TestRules(t *testing.T) {
	t.Run("MinLength counts characters not bytes", func(t *testing.T) {
		_, err := MinLength(3, "short")("äöü")
		assert.NoError(t, err)
	})

	t.Run("MaxLength", func(t *testing.T) {
		_, err := MaxLength(2, "long")("abc")
		assert.EqualError(t, err, "long")
	})

	t.Run("Required", func(t *testing.T) {
		_, err := Required("required")("")
		assert.EqualError(t, err, "required")
	})

	t.Run("Float accepts zero and rejects text", func(t *testing.T) {
		v, err := Float(decimal.Zero, "bad")("0")
		require.NoError(t, err)
		assert.Equal(t, "0", v)

		_, err = Float(decimal.Zero, "bad")("ten")
		assert.EqualError(t, err, "bad")
	})

	t.Run("Float accepts any decimal notation", func(t *testing.T) {
		v, err := Float(decimal.Zero, "bad")(".5")
		require.NoError(t, err)
		assert.Equal(t, "0.5", v)

		v, err = Float(decimal.Zero, "bad")("1e3")
		require.NoError(t, err)
		assert.Equal(t, "1000", v)
	})

	t.Run("Precision bounds value and scale", func(t *testing.T) {
		rule := Precision(decimal.RequireFromString("99999999.99"), 2, "bad")

		for _, ok := range []string{"0", "2.5", "19.99", "99999999.99"} {
			v, err := rule(ok)
			require.NoError(t, err, ok)
			assert.Equal(t, ok, v)
		}
		for _, bad := range []string{"100000000", "100000000000", "1.999", "0.001"} {
			_, err := rule(bad)
			assert.EqualError(t, err, "bad", bad)
		}

		v, err := rule("ten")
		require.NoError(t, err, "non decimals are left to Float")
		assert.Equal(t, "ten", v)
	})

	t.Run("Int enforces inclusive minimum", func(t *testing.T) {
		v, err := Int(0, "bad")("0")
		require.NoError(t, err)
		assert.Equal(t, "0", v)

		_, err = Int(0, "bad")("-1")
		assert.EqualError(t, err, "bad")
	})

	t.Run("Escape and Unescape round trip", func(t *testing.T) {
		raw := `PS5's "Pro" <edition> a/b \ ` + "`x`" + ` & more`
		escaped, err := Escape(raw)
		require.NoError(t, err)
		assert.NotContains(t, escaped, "<")
		assert.NotContains(t, escaped, "'")
		assert.Equal(t, raw, Unescape(escaped))
	})
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{}, List(nil))
	assert.Equal(t, []string{}, List([]string(nil)))
	assert.Equal(t, []string{"3"}, List("3"))
	assert.Equal(t, []string{"3", "4"}, List([]string{"3", "4"}))
}

func TestEach(t *testing.T) {
	values, errs := Each("category", []string{" 1 ", ""}, Trim, Required("category required"), Escape)
	assert.Equal(t, []string{"1", ""}, values)
	assert.Equal(t, Errors{{Field: "category", Message: "category required"}}, errs)
}

func TestErrors(t *testing.T) {
	errs := Errors{
		{Field: "name", Message: "too short"},
		{Field: "price", Message: "negative"},
		{Field: "name", Message: "too long"},
	}

	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("quantity"))
	assert.Equal(t, []string{"too short", "too long"}, errs.For("name"))
	assert.Equal(t, []string{"too short", "negative", "too long"}, errs.Messages())
}
