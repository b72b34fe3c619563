package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_CodeShape(t *testing.T) {
	gen := NewCodeGenerator()

	for i := 0; i < 100; i++ {
		code := gen.Generate()
		assert.Len(t, code, codeLength)
		assert.Equal(t, strings.ToUpper(code), code)
		for _, c := range code {
			assert.Contains(t, codeAlphabet, string(c))
		}
	}
}

func TestCatalog_PickIsFromDeck(t *testing.T) {
	catalog := NewLocationCatalog()

	for i := 0; i < 50; i++ {
		assert.Contains(t, defaultLocations, catalog.Pick())
	}
}
