package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	assert.True(t, IsValidCPF("529.982.247-25"))
	assert.True(t, IsValidCPF("52998224725"))

	assert.False(t, IsValidCPF("529.982.247-24")) // dígito trocado
	assert.False(t, IsValidCPF("111.111.111-11")) // repetido
	assert.False(t, IsValidCPF("1234567890"))     // curto
	assert.False(t, IsValidCPF(""))
}

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("11222333000181"))

	assert.False(t, IsValidCNPJ("11.222.333/0001-80")) // dígito trocado
	assert.False(t, IsValidCNPJ("11.111.111/1111-11")) // repetido
	assert.False(t, IsValidCNPJ("1122233300018"))      // curto
	assert.False(t, IsValidCNPJ(""))
}
