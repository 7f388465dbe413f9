package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, field string, files map[string][]byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	for key, value := range extra {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func toolsContext(t *testing.T, target string, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestImageToPDF_Success(t *testing.T) {
	h := NewToolsHandler(10*1024*1024, discardLogger())
	body, contentType := multipartBody(t, "images", map[string][]byte{
		"a.png": pngBytes(t),
		"b.png": pngBytes(t),
	}, nil)

	c, w := toolsContext(t, "/v1/tools/image-to-pdf", body, contentType)
	h.ImageToPDF(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="images_to_pdf.pdf"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("response body is not a pdf")
	}
}

func TestImageToPDF_NoDecodableImages(t *testing.T) {
	h := NewToolsHandler(10*1024*1024, discardLogger())
	body, contentType := multipartBody(t, "images", map[string][]byte{
		"junk.txt": []byte("not an image"),
	}, nil)

	c, w := toolsContext(t, "/v1/tools/image-to-pdf", body, contentType)
	h.ImageToPDF(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestImageToPDF_MissingFiles(t *testing.T) {
	h := NewToolsHandler(10*1024*1024, discardLogger())
	body, contentType := multipartBody(t, "images", nil, map[string]string{"unused": "x"})

	c, w := toolsContext(t, "/v1/tools/image-to-pdf", body, contentType)
	h.ImageToPDF(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestImageToPDF_UploadTooLarge(t *testing.T) {
	h := NewToolsHandler(16, discardLogger())
	body, contentType := multipartBody(t, "images", map[string][]byte{
		"a.png": pngBytes(t),
	}, nil)

	c, w := toolsContext(t, "/v1/tools/image-to-pdf", body, contentType)
	h.ImageToPDF(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("oversized upload must be rejected, got %d", w.Code)
	}
}

func TestPDFToImages_InvalidPDF(t *testing.T) {
	h := NewToolsHandler(10*1024*1024, discardLogger())
	body, contentType := multipartBody(t, "pdf", map[string][]byte{
		"doc.pdf": []byte("not a pdf"),
	}, map[string]string{"format": "png"})

	c, w := toolsContext(t, "/v1/tools/pdf-to-images", body, contentType)
	h.PDFToImages(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPDFToImages_MissingFile(t *testing.T) {
	h := NewToolsHandler(10*1024*1024, discardLogger())
	body, contentType := multipartBody(t, "other", map[string][]byte{
		"x.bin": []byte("x"),
	}, nil)

	c, w := toolsContext(t, "/v1/tools/pdf-to-images", body, contentType)
	h.PDFToImages(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}
