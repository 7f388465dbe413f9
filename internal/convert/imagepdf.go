// Package convert 实现两个独立的文件转换工具：
// 多张图片合成一个多页 PDF，以及把 PDF 逐页栅格化打包为 zip。
// 两者都是无状态的纯字节变换，失败时不产出任何文件。
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoDecodableImages 表示没有任何一张上传图片能被解码。
var ErrNoDecodableImages = errors.New("none of the uploaded images could be decoded")

const (
	jpegQuality = 92
	// 假定图片为 96 DPI 屏幕素材，按 72pt/inch 换算页面尺寸。
	pointsPerPixel = 72.0 / 96.0
)

type pdfPage struct {
	jpegData []byte
	widthPt  float64
	heightPt float64
}

// ImagesToPDF 依上传顺序把图片合成为单个多页 PDF。
// 解码失败的图片静默跳过；全部失败时返回 ErrNoDecodableImages 且不产出字节。
// 返回值含成功合成的页数。
func ImagesToPDF(files [][]byte) ([]byte, int, error) {
	pages := make([]pdfPage, 0, len(files))
	for _, data := range files {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		page, err := toPage(img)
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, 0, ErrNoDecodableImages
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pages[0].widthPt, Ht: pages[0].heightPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	for i, page := range pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.widthPt, Ht: page.heightPt})
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page.jpegData))
		pdf.ImageOptions(name, 0, 0, page.widthPt, page.heightPt, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("compose pdf: %w", err)
	}
	return out.Bytes(), len(pages), nil
}

// toPage 把任意色彩模式的图片压平为白底三通道 JPEG 页面。
func toPage(img image.Image) (pdfPage, error) {
	bounds := img.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return pdfPage{}, fmt.Errorf("encode page jpeg: %w", err)
	}

	return pdfPage{
		jpegData: buf.Bytes(),
		widthPt:  float64(bounds.Dx()) * pointsPerPixel,
		heightPt: float64(bounds.Dy()) * pointsPerPixel,
	}, nil
}
