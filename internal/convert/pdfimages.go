package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// 基准 72 DPI 的两倍，即双轴分辨率翻倍。
const rasterDPI = 144

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeBaseName 去掉扩展名并把不安全字符替换为下划线，空结果回落为 "page"。
func SanitizeBaseName(filename string) string {
	base := filename
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	safe := unsafeNameChars.ReplaceAllString(base, "_")
	if safe == "" {
		return "page"
	}
	return safe
}

// NormalizeFormat 把目标格式收敛到 {png, jpg, jpeg}，其他值默认 png。
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpg":
		return "jpg"
	case "jpeg":
		return "jpeg"
	default:
		return "png"
	}
}

// PDFToImages 把 PDF 每一页按 2 倍基准分辨率栅格化，
// 打包为 zip（每页一个条目，命名 <base>_page_<n>.<fmt>）。
// 打开或渲染失败时不产出任何字节。返回值含页数。
func PDFToImages(pdfData []byte, sourceName, format string) ([]byte, int, error) {
	format = NormalizeFormat(format)

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	base := SanitizeBaseName(sourceName)
	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)

	pageCount := doc.NumPage()
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, rasterDPI)
		if err != nil {
			return nil, 0, fmt.Errorf("render page %d: %w", i+1, err)
		}

		var imgBuf bytes.Buffer
		switch format {
		case "png":
			err = png.Encode(&imgBuf, img)
		default:
			err = jpeg.Encode(&imgBuf, img, &jpeg.Options{Quality: jpegQuality})
		}
		if err != nil {
			return nil, 0, fmt.Errorf("encode page %d: %w", i+1, err)
		}

		entry, err := zw.Create(fmt.Sprintf("%s_page_%d.%s", base, i+1, format))
		if err != nil {
			return nil, 0, fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := entry.Write(imgBuf.Bytes()); err != nil {
			return nil, 0, fmt.Errorf("write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("finalize zip: %w", err)
	}
	return zipBuf.Bytes(), pageCount, nil
}
