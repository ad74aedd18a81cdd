package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfcache/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", fmt.Errorf("item 4: %w", entities.ErrNotFound), http.StatusNotFound, "item not found"},
		{"constraint", fmt.Errorf("%w: FOREIGN KEY constraint failed", entities.ErrConstraintViolation), http.StatusConflict, "referenced item does not exist"},
		{"fetch", fmt.Errorf("%w: fetch books: timeout", entities.ErrFetchFailed), http.StatusBadGateway, "catalog fetch failed"},
		{"bare validation", entities.ErrValidationFailed, http.StatusBadRequest, "validation failed"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err, "item", "test")

			assert.Equal(t, tt.expectedCode, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedErr, response.Error)
			assert.NotContains(t, w.Body.String(), "disk full")
		})
	}
}

func TestRespondServiceError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := fmt.Errorf("create: %w", &entities.ValidationError{Fields: map[string]string{"title": "must not be blank"}})
	respondServiceError(c, err, "item", "test")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"validation failed","code":"validation_failed","details":{"title":"must not be blank"}}`, w.Body.String())
}

func TestRespondAccepted(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondAccepted(c, "seed enqueued", gin.H{"task_id": "abc"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"message":"seed enqueued","data":{"task_id":"abc"}}`, w.Body.String())
}
