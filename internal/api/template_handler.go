package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge/internal/render"
)

// TemplateHandler 提供模板目录与示例预览，两者均无需登录。
type TemplateHandler struct{}

// NewTemplateHandler 构造 TemplateHandler。
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

type templateListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PreviewURL  string `json:"preview_url"`
}

// ListTemplates 返回全部内置模板。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	layouts := render.List()
	items := make([]templateListItem, 0, len(layouts))
	for _, l := range layouts {
		items = append(items, templateListItem{
			ID:          l.Key,
			Name:        l.Name,
			Description: l.Description,
			PreviewURL:  "/v1/preview/" + l.Key,
		})
	}
	c.JSON(http.StatusOK, items)
}

// PreviewTemplate 用示例数据渲染指定模板；未知模板回落到默认布局。
func (h *TemplateHandler) PreviewTemplate(c *gin.Context) {
	key := c.Param("template")
	html, err := render.PreviewHTML(key)
	if err != nil {
		Internal(c, "failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
