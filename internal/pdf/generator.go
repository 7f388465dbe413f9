package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrUnavailable 表示本机没有可用的渲染后端（未找到 Chromium）。
// 调用方应向用户报告错误并保持原状态，而不是产出残缺文件。
var ErrUnavailable = errors.New("pdf rendering backend is unavailable")

// Generator 将 HTML 渲染为分页的 PDF 字节。
type Generator interface {
	GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error)
}

// RodGenerator 使用 go-rod 驱动无头浏览器完成渲染。
type RodGenerator struct {
	pageTimeout time.Duration
}

// NewRodGenerator 构造 RodGenerator。
func NewRodGenerator() *RodGenerator {
	return &RodGenerator{pageTimeout: 30 * time.Second}
}

// GeneratePDF 在无头浏览器中渲染 HTML 并返回 PDF 字节。
// 找不到浏览器可执行文件时返回 ErrUnavailable。
func (g *RodGenerator) GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error) {
	path, found := launcher.LookPath()
	if !found {
		return nil, ErrUnavailable
	}

	launch := launcher.New().
		Bin(path).
		Headless(true).
		NoSandbox(true)

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(g.pageTimeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(g.pageTimeout)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}

	return data, nil
}
