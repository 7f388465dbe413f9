package api

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge/internal/convert"
)

// ToolsHandler 提供独立的文件转换工具接口，与简历数据无关。
type ToolsHandler struct {
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewToolsHandler 构造 ToolsHandler。
func NewToolsHandler(maxUploadBytes int64, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{maxUploadBytes: maxUploadBytes, logger: logger}
}

func (h *ToolsHandler) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return nil, errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if h.maxUploadBytes > 0 {
		return io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	}
	return io.ReadAll(f)
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// ImageToPDF 将上传的图片合并为一份 PDF，每张图片占一页。
// 无法解码的图片被跳过，全部失败时报错。
func (h *ToolsHandler) ImageToPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "invalid multipart form")
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		BadRequest(c, "at least one image file is required")
		return
	}

	files := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		data, err := h.readUpload(fh)
		if err != nil {
			if errors.Is(err, errUploadTooLarge) {
				BadRequest(c, "uploaded file exceeds size limit")
				return
			}
			Internal(c, "failed to read upload")
			return
		}
		files = append(files, data)
	}

	pdfData, pages, err := convert.ImagesToPDF(files)
	if err != nil {
		if errors.Is(err, convert.ErrNoDecodableImages) {
			BadRequest(c, "none of the uploaded files could be decoded as images")
			return
		}
		h.logger.Error("images to pdf", slog.Any("error", err))
		Internal(c, "failed to build pdf")
		return
	}

	h.logger.Info("images converted to pdf", slog.Int("pages", pages))
	c.Header("Content-Disposition", `attachment; filename="images_to_pdf.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfData)
}

// PDFToImages 将上传的 PDF 逐页栅格化，打包为 zip 返回。
func (h *ToolsHandler) PDFToImages(c *gin.Context) {
	fh, err := c.FormFile("pdf")
	if err != nil {
		BadRequest(c, "a pdf file is required")
		return
	}

	data, err := h.readUpload(fh)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			BadRequest(c, "uploaded file exceeds size limit")
			return
		}
		Internal(c, "failed to read upload")
		return
	}

	format := convert.NormalizeFormat(c.PostForm("format"))
	archive, pages, err := convert.PDFToImages(data, fh.Filename, format)
	if err != nil {
		h.logger.Error("pdf to images", slog.Any("error", err))
		BadRequest(c, "the uploaded file could not be read as a pdf")
		return
	}

	h.logger.Info("pdf converted to images", slog.Int("pages", pages), slog.String("format", format))
	c.Header("Content-Disposition", `attachment; filename="pdf_pages.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
