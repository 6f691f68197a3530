package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	logger.Debug("hidden")
	logger.With("session_id", "s1").Info("quiz generated", "questions", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quiz generated", entry["msg"])
	assert.Equal(t, "s1", entry["session_id"])
	assert.EqualValues(t, 5, entry["questions"])
}

func TestSlogLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	logger.LogError(errors.New("boom"), "generation failed", "document_id", "doc-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "doc-1", entry["document_id"])
}

func TestLoggerMiddleware_LevelsByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	router := gin.New()
	router.Use(LoggerMiddleware(newLogger(&buf, "production")))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, http.StatusNotFound, entry["status_code"])
	assert.Equal(t, "/missing", entry["path"])
}
