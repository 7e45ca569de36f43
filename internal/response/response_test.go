package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOkDefaults(t *testing.T) {
	r := Ok(42)
	assert.True(t, r.IsSuccess)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, "Operation successful", r.Message)
	assert.Equal(t, 42, r.Data)
}

func TestOkMsgOverridesMessage(t *testing.T) {
	r := OkMsg("payload", "Team created successfully.")
	assert.True(t, r.IsSuccess)
	assert.Equal(t, "Team created successfully.", r.Message)
	assert.Equal(t, "payload", r.Data)
}

func TestFailCarriesNoData(t *testing.T) {
	r := Fail[*struct{}]("Access Denied", http.StatusForbidden)
	assert.False(t, r.IsSuccess)
	assert.Equal(t, http.StatusForbidden, r.StatusCode)
	assert.Equal(t, "Access Denied", r.Message)
	assert.Nil(t, r.Data)
}
