package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailDomainValid(t *testing.T) {
	assert.True(t, IsEmailDomainValid("ana@exemplo.com"))
	assert.True(t, IsEmailDomainValid("ana@sub.exemplo.com.br"))

	assert.False(t, IsEmailDomainValid("ana"))
	assert.False(t, IsEmailDomainValid("ana@"))
	assert.False(t, IsEmailDomainValid("@exemplo.com"))
	assert.False(t, IsEmailDomainValid("ana@localhost"))
	assert.False(t, IsEmailDomainValid("ana@.exemplo.com"))
	assert.False(t, IsEmailDomainValid("ana@exemplo.com."))
	assert.False(t, IsEmailDomainValid("ana@exe mplo.com"))
}
