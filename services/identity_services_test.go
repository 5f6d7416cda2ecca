package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFullName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		ok         bool
		surname    string
		firstName  string
		patronymic string
	}{
		{
			name:       "three tokens fill all parts",
			input:      "Иванов Иван Иванович",
			ok:         true,
			surname:    "Иванов",
			firstName:  "Иван",
			patronymic: "Иванович",
		},
		{
			name:      "two tokens leave the patronymic empty",
			input:     "Иванов Иван",
			ok:        true,
			surname:   "Иванов",
			firstName: "Иван",
		},
		{
			name:  "single token is malformed",
			input: "Иванов",
			ok:    false,
		},
		{
			name:  "empty input is malformed",
			input: "",
			ok:    false,
		},
		{
			name:  "whitespace only is malformed",
			input: "   ",
			ok:    false,
		},
		{
			name:      "four tokens keep only surname and name",
			input:     "Иванов Иван Иванович Младший",
			ok:        true,
			surname:   "Иванов",
			firstName: "Иван",
		},
		{
			name:       "extra whitespace is normalized",
			input:      "  Иванов   Иван\tИванович ",
			ok:         true,
			surname:    "Иванов",
			firstName:  "Иван",
			patronymic: "Иванович",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseFullName(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.surname, parsed.Surname)
			assert.Equal(t, tt.firstName, parsed.Name)
			assert.Equal(t, tt.patronymic, parsed.Patronymic)
		})
	}
}
