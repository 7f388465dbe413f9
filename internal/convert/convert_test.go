package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestImagesToPDF_MultiplePages(t *testing.T) {
	files := [][]byte{
		encodePNG(t, 96, 96, color.RGBA{R: 255, A: 255}),
		encodePNG(t, 192, 96, color.RGBA{G: 255, A: 255}),
	}

	data, pages, err := ImagesToPDF(files)
	if err != nil {
		t.Fatalf("images to pdf: %v", err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages, got %d", pages)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a pdf")
	}
}

func TestImagesToPDF_SkipsUndecodable(t *testing.T) {
	files := [][]byte{
		[]byte("definitely not an image"),
		encodePNG(t, 64, 64, color.White),
	}

	_, pages, err := ImagesToPDF(files)
	if err != nil {
		t.Fatalf("images to pdf: %v", err)
	}
	if pages != 1 {
		t.Fatalf("expected 1 page after skipping garbage, got %d", pages)
	}
}

func TestImagesToPDF_AllUndecodable(t *testing.T) {
	files := [][]byte{
		[]byte("garbage"),
		[]byte("more garbage"),
	}

	data, _, err := ImagesToPDF(files)
	if !errors.Is(err, ErrNoDecodableImages) {
		t.Fatalf("expected ErrNoDecodableImages, got %v", err)
	}
	if data != nil {
		t.Fatal("no bytes must be produced on failure")
	}
}

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report"},
		{"my file (1).pdf", "my_file__1_"},
		{"архив.pdf", "_____"},
		{".pdf", "page"},
		{"", "page"},
		{"already_safe-name.pdf", "already_safe-name"},
	}
	for _, tc := range cases {
		if got := SanitizeBaseName(tc.in); got != tc.want {
			t.Fatalf("SanitizeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeFormat(t *testing.T) {
	cases := map[string]string{
		"png":  "png",
		"jpg":  "jpg",
		"JPEG": "jpeg",
		"gif":  "png",
		"":     "png",
	}
	for in, want := range cases {
		if got := NormalizeFormat(in); got != want {
			t.Fatalf("NormalizeFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPDFToImages_RoundTrip(t *testing.T) {
	files := [][]byte{
		encodePNG(t, 96, 96, color.RGBA{B: 255, A: 255}),
		encodePNG(t, 96, 96, color.White),
		encodePNG(t, 96, 96, color.Black),
	}
	pdfData, pages, err := ImagesToPDF(files)
	if err != nil {
		t.Fatalf("compose pdf: %v", err)
	}
	if pages != 3 {
		t.Fatalf("expected 3 pages, got %d", pages)
	}

	archive, count, err := PDFToImages(pdfData, "scan (final).pdf", "png")
	if err != nil {
		t.Fatalf("pdf to images: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rasterized pages, got %d", count)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("expected 3 zip entries, got %d", len(zr.File))
	}
	wantNames := []string{"scan__final__page_1.png", "scan__final__page_2.png", "scan__final__page_3.png"}
	for i, f := range zr.File {
		if f.Name != wantNames[i] {
			t.Fatalf("entry %d named %q, want %q", i, f.Name, wantNames[i])
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry: %v", err)
		}
		img, err := png.Decode(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("decode entry %s: %v", f.Name, err)
		}
		// 144 DPI 栅格化相当于把 72pt 页面按 2 倍采样。
		if img.Bounds().Dx() < 96 {
			t.Fatalf("entry %s unexpectedly small: %v", f.Name, img.Bounds())
		}
	}
}

func TestPDFToImages_InvalidInput(t *testing.T) {
	if _, _, err := PDFToImages([]byte("not a pdf"), "x.pdf", "png"); err == nil {
		t.Fatal("expected error for invalid pdf input")
	}
}

func TestPDFToImages_JPEGFormat(t *testing.T) {
	pdfData, _, err := ImagesToPDF([][]byte{encodePNG(t, 64, 64, color.White)})
	if err != nil {
		t.Fatalf("compose pdf: %v", err)
	}
	archive, _, err := PDFToImages(pdfData, "doc.pdf", "jpg")
	if err != nil {
		t.Fatalf("pdf to images: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 1 || !strings.HasSuffix(zr.File[0].Name, "_page_1.jpg") {
		t.Fatalf("unexpected entries: %v", zr.File[0].Name)
	}
}
