package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContact_FullLine(t *testing.T) {
	info := ExtractContact("John Smith john@example.com 555-1234")
	assert.Equal(t, "John", info.Name)
	assert.Equal(t, "john@example.com", info.Email)
	assert.Contains(t, info.Phone, "555")
	assert.Contains(t, info.Phone, "1234")
}

func TestExtractContact_EmailOnly(t *testing.T) {
	info := ExtractContact("you can reach me at jane.doe+leads@mail.example.org")
	assert.Equal(t, "jane.doe+leads@mail.example.org", info.Email)
	assert.Empty(t, info.Phone)
	assert.Empty(t, info.Name)
}

func TestExtractContact_InternationalPhone(t *testing.T) {
	info := ExtractContact("call me on +44 20 7946 0958 anytime")
	assert.Equal(t, "+44 20 7946 0958", info.Phone)
}

func TestExtractContact_EmailDigitsDoNotBecomePhone(t *testing.T) {
	info := ExtractContact("agent007@example.com")
	assert.Equal(t, "agent007@example.com", info.Email)
	assert.Empty(t, info.Phone)
}

func TestExtractContact_NameSkipsEmailToken(t *testing.T) {
	// The capitalized token inside the email must not win over a real name.
	info := ExtractContact("Maria.Lopez@example.com Maria here")
	assert.Equal(t, "Maria.Lopez@example.com", info.Email)
	assert.Equal(t, "Maria", info.Name)
}

func TestExtractContact_NothingToExtract(t *testing.T) {
	info := ExtractContact("i'd rather not say")
	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
}
