package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		password string
		wantErr  bool
	}{
		{name: "from argument", args: []string{"lets@123"}, password: "lets@123"},
		{name: "from stdin", stdin: "lets@123\n", password: "lets@123"},
		{name: "stdin without newline", stdin: "тест123", password: "тест123"},
		{name: "empty argument", args: []string{""}, wantErr: true},
		{name: "empty stdin", stdin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := generate(tt.args, strings.NewReader(tt.stdin), bcrypt.MinCost)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.password)))
		})
	}
}
