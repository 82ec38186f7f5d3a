package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHost(t *testing.T) {
	testCases := []struct {
		name         string
		playtimeHost string
		port         string
		expected     string
	}{
		{"Defaults to local server", "", "", "http://localhost:8080"},
		{"Uses server port", "", "9090", "http://localhost:9090"},
		{"Explicit host wins", "https://playtime.example.com", "9090", "https://playtime.example.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PLAYTIME_HOST", tc.playtimeHost)
			t.Setenv("PORT", tc.port)
			assert.Equal(t, tc.expected, defaultHost())
		})
	}
}
