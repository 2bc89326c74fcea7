package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

func bindSample(body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()

	router := gin.New()
	router.POST("/sample", func(c *gin.Context) {
		var req sampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindingError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/sample", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleBindingErrorFieldMessages(t *testing.T) {
	recorder := bindSample(`{"email": "not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Email must be a valid email address")
	assert.Contains(t, recorder.Body.String(), "Name is required")
}

func TestHandleBindingErrorMalformedJSON(t *testing.T) {
	recorder := bindSample(`{"email": `)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid request format")
}

func TestValidRequestPassesBinding(t *testing.T) {
	recorder := bindSample(`{"email": "head@riverside.ac.ke", "name": "Jane"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
