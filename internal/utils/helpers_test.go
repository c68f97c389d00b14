package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name         string
		limitStr     string
		offsetStr    string
		defaultLimit int
		wantLimit    int
		wantOffset   int
		wantErr      bool
	}{
		{name: "defaults", defaultLimit: 10, wantLimit: 10, wantOffset: 0},
		{name: "unlimited default", defaultLimit: 0, wantLimit: 0, wantOffset: 0},
		{name: "explicit values", limitStr: "25", offsetStr: "5", defaultLimit: 10, wantLimit: 25, wantOffset: 5},
		{name: "zero limit", limitStr: "0", defaultLimit: 10, wantErr: true},
		{name: "negative limit", limitStr: "-3", defaultLimit: 10, wantErr: true},
		{name: "limit too large", limitStr: "500", defaultLimit: 10, wantErr: true},
		{name: "non-numeric limit", limitStr: "abc", defaultLimit: 10, wantErr: true},
		{name: "negative offset", offsetStr: "-1", defaultLimit: 10, wantErr: true},
		{name: "non-numeric offset", offsetStr: "abc", defaultLimit: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limitStr, tt.offsetStr, tt.defaultLimit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@example.com"))
	assert.True(t, IsValidEmail("first.last@mail.example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("jane@"))
	assert.False(t, IsValidEmail("jane@nodot"))
	assert.False(t, IsValidEmail("jane doe@example.com"))
}

func TestSendErrorResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendErrorResponse(recorder, http.StatusNotFound, "project not found")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "project not found", body["detail"])
}
