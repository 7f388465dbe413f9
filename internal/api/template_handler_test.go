package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestListTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/templates", nil)
	h.ListTemplates(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []templateListItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 29 {
		t.Fatalf("expected 29 templates, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "" || item.Name == "" || item.Description == "" {
			t.Fatalf("incomplete template entry: %+v", item)
		}
		if item.PreviewURL != "/v1/preview/"+item.ID {
			t.Fatalf("unexpected preview url: %q", item.PreviewURL)
		}
	}
}

func TestPreviewTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/preview/neon", nil)
	c.Params = gin.Params{{Key: "template", Value: "neon"}}
	h.PreviewTemplate(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Jamie Smith") {
		t.Fatal("preview missing sample data")
	}
}

func TestPreviewTemplate_UnknownKeyStillRenders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/preview/nope", nil)
	c.Params = gin.Params{{Key: "template", Value: "nope"}}
	h.PreviewTemplate(c)

	if w.Code != http.StatusOK {
		t.Fatalf("unknown template must fall back, got %d", w.Code)
	}
}
