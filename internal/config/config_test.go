package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIKeys(t *testing.T) {
	assert.Equal(t, []string{"k1", "k2", "k3"}, ParseAPIKeys("k1, k2\nk3,,"))
	assert.Empty(t, ParseAPIKeys(""))
	assert.Empty(t, ParseAPIKeys(" , \n "))
}

func TestClampBatchSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"Zero usa o padrão", 0, 500},
		{"Negativo usa o padrão", -10, 500},
		{"Abaixo do mínimo", 10, 50},
		{"Acima do máximo", 5000, 2000},
		{"Dentro do intervalo", 750, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampBatchSize(tt.input))
		})
	}
}

func TestKeepaNormalize(t *testing.T) {
	t.Run("Chave única entra no pool vazio", func(t *testing.T) {
		k := Keepa{APIKey: "solo", TokensPerMinute: 0, SafetyRemaining: -5, BatchSize: 3000}
		k.Normalize()

		assert.Equal(t, []string{"solo"}, k.APIKeys)
		assert.Equal(t, 1, k.TokensPerMinute)
		assert.Equal(t, 0, k.SafetyRemaining)
		assert.Equal(t, 2000, k.BatchSize)
	})

	t.Run("Pool tem prioridade sobre a chave única", func(t *testing.T) {
		k := Keepa{APIKey: "solo", RawAPIKeys: "a,b"}
		k.Normalize()

		assert.Equal(t, []string{"a", "b"}, k.APIKeys)
	})
}

func TestSellerboardSources(t *testing.T) {
	s := Sellerboard{DailyURLs: map[string]string{
		"UK": "https://uk",
		"DE": "https://de",
		"FR": " ",
		"BE": "https://be",
	}}

	sources := s.Sources()
	codes := make([]string, 0, len(sources))
	for _, src := range sources {
		codes = append(codes, src.Code)
	}

	assert.Equal(t, []string{"BE", "DE", "UK"}, codes)
}
