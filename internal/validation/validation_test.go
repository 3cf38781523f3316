package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectsAllViolations(t *testing.T) {
	e := New()
	if e.Required("email", "not-an-email") {
		e.Email("email", "not-an-email")
	}
	e.Required("phone", "")
	if e.Required("password", "abc") {
		e.MinLen("password", "abc", 6)
	}

	assert.True(t, e.Any())
	assert.Len(t, e["email"], 1)
	assert.Len(t, e["phone"], 1)
	assert.Len(t, e["password"], 1)
}

func TestRequiredChainsOnlyWhenPresent(t *testing.T) {
	e := New()
	if e.Required("code", "   ") {
		t.Fatal("blank value must not count as present")
	}
	assert.Len(t, e["code"], 1, "only the required message, no digits message")
}

func TestEmailRule(t *testing.T) {
	for _, bad := range []string{"plain", "a@", "@x.com", "Name <a@x.com>"} {
		e := New()
		e.Email("email", bad)
		assert.True(t, e.Any(), "expected %q to be rejected", bad)
	}
	e := New()
	e.Email("email", "a@x.com")
	assert.False(t, e.Any())
}

func TestDigitsRule(t *testing.T) {
	cases := map[string]bool{
		"1234":  true,
		"123":   false,
		"12345": false,
		"12a4":  false,
		"":      false,
	}
	for value, ok := range cases {
		e := New()
		e.Digits("code", value, 4)
		assert.Equal(t, !ok, e.Any(), "value %q", value)
	}
}

func TestOneOfRule(t *testing.T) {
	e := New()
	e.OneOf("via", "email", "email", "sms")
	assert.False(t, e.Any())

	e = New()
	e.OneOf("via", "pigeon", "email", "sms")
	assert.True(t, e.Any())
}
