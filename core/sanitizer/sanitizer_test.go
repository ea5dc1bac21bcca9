package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/sanitizer"
)

func TestStringHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"trim", sanitizer.Trim, "  ada  ", "ada"},
		{"title", sanitizer.ToTitle, "acme corp", "Acme Corp"},
		{"nfc composes accents", sanitizer.NormalizeUnicode, "Cafe\u0301", "Caf\u00e9"},
		{"collapse whitespace", sanitizer.CollapseWhitespace, "  Acme \t  Corp\n", "Acme Corp"},
		{"single line", sanitizer.SingleLine, "a\r\nb", "a  b"},
		{"strip tags", sanitizer.StripHTML, "<b>Acme</b><script>alert(1)</script>", "Acme"},
		{"strip keeps ampersand", sanitizer.StripHTML, "R&D Labs", "R&D Labs"},
		{"no null", sanitizer.RemoveNullBytes, "a\x00b", "ab"},
		{"no control keeps newline", sanitizer.RemoveControlChars, "a\x07b\nc", "ab\nc"},
		{"email lowercases domain", sanitizer.NormalizeEmail, " Ada@Example.COM ", "Ada@example.com"},
		{"email without at", sanitizer.NormalizeEmail, " nope ", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestMaxLengthCountsRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "abc", sanitizer.MaxLength("abc", 10))
	assert.Empty(t, sanitizer.MaxLength("abc", 0))
}

func TestApply(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.Apply("  <i>Acme</i>   Corp  ", "strip_html,whitespace,max:4")
	require.NoError(t, err)
	assert.Equal(t, "Acme", out)

	_, err = sanitizer.Apply("x", "trim,shout")
	assert.ErrorIs(t, err, sanitizer.ErrUnknownSanitizer)

	_, err = sanitizer.Apply("x", "max:abc")
	assert.ErrorIs(t, err, sanitizer.ErrUnknownSanitizer)
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type address struct {
		City string `sanitize:"trim,title"`
	}
	type form struct {
		Email    string `sanitize:"email"`
		Company  string `sanitize:"strip_html,nfc,whitespace"`
		Password string
		Raw      string `sanitize:"-"`
		Address  address
		Billing  *address
	}

	f := form{
		Email:    "  Ada@Example.ORG",
		Company:  " <b>Acme</b>  Corp ",
		Password: "  keep me  ",
		Raw:      "  raw  ",
		Address:  address{City: " london "},
		Billing:  &address{City: "paris"},
	}
	require.NoError(t, sanitizer.SanitizeStruct(&f))

	assert.Equal(t, "Ada@example.org", f.Email)
	assert.Equal(t, "Acme Corp", f.Company)
	assert.Equal(t, "  keep me  ", f.Password)
	assert.Equal(t, "  raw  ", f.Raw)
	assert.Equal(t, "London", f.Address.City)
	assert.Equal(t, "Paris", f.Billing.City)

	assert.ErrorIs(t, sanitizer.SanitizeStruct(f), sanitizer.ErrInvalidTarget)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	sanitizer.Register("shout_test", strings.ToUpper)
	out, err := sanitizer.Apply("hey", "shout_test")
	require.NoError(t, err)
	assert.Equal(t, "HEY", out)
}
