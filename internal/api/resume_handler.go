package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvforge/internal/database"
	"cvforge/internal/forms"
	"cvforge/internal/pdf"
	"cvforge/internal/render"
	"cvforge/internal/store"
	"cvforge/internal/suggest"
)

// ResumeHandler 负责简历文档的增删改查与渲染导出。
type ResumeHandler struct {
	store  *store.Store
	pdfGen pdf.Generator
	logger *slog.Logger
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(st *store.Store, pdfGen pdf.Generator, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{store: st, pdfGen: pdfGen, logger: logger}
}

type resumeListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Template       string                `json:"template"`
	UseCustomTheme bool                  `json:"use_custom_theme"`
	ColorPrimary   string                `json:"color_primary,omitempty"`
	ColorSecondary string                `json:"color_secondary,omitempty"`
	ColorAccent    string                `json:"color_accent,omitempty"`
	ColorBg        string                `json:"color_bg,omitempty"`
	ColorText      string                `json:"color_text,omitempty"`
	FontFamily     string                `json:"font_family,omitempty"`
	History        []database.AuditEntry `json:"history"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func newResumeResponse(resume *database.Resume) (resumeResponse, error) {
	history, err := store.AuditLog(resume)
	if err != nil {
		return resumeResponse{}, err
	}
	return resumeResponse{
		ID:             resume.ID,
		Title:          resume.Title,
		Template:       resume.Template,
		UseCustomTheme: resume.UseCustomTheme,
		ColorPrimary:   resume.ColorPrimary,
		ColorSecondary: resume.ColorSecondary,
		ColorAccent:    resume.ColorAccent,
		ColorBg:        resume.ColorBg,
		ColorText:      resume.ColorText,
		FontFamily:     resume.FontFamily,
		History:        history,
		CreatedAt:      resume.CreatedAt,
		UpdatedAt:      resume.UpdatedAt,
	}, nil
}

// CreateResume 创建新简历；必须显式选择模板，否则提示先浏览模板列表。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req forms.ResumeSettingsForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Template == "" {
		FieldErrors(c, map[string]string{"template": "Choose a template to start building your resume."})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	resume, err := h.store.CreateResume(c.Request.Context(), userID, req.Settings())
	if err != nil {
		if errors.Is(err, store.ErrResumeLimit) {
			Forbidden(c, "resume limit reached")
			return
		}
		Internal(c, "failed to create resume")
		return
	}

	resp, err := newResumeResponse(resume)
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListResumes 按最近更新时间倒序列出用户全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	resumes, err := h.store.ListResumes(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:        r.ID,
			Title:     r.Title,
			Template:  r.Template,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

type editContextResponse struct {
	Resume       resumeResponse        `json:"resume"`
	PersonalInfo database.PersonalInfo `json:"personal_info"`
	Experiences  []database.Experience `json:"experiences"`
	Education    []database.Education  `json:"education"`
	Skills       []database.Skill      `json:"skills"`
	Projects     []database.Project    `json:"projects"`
	Suggestions  []string              `json:"suggestions"`
}

// GetResume 返回编辑视图所需的完整上下文：
// 简历、子实体、首次访问时自动创建的空 PersonalInfo，以及实时计算的建议。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := resumeIDParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	// 幂等：已存在时直接返回，否则建一条空记录。
	if _, err := h.store.GetOrCreatePersonalInfo(ctx, userID, resumeID); err != nil {
		h.respondStoreError(c, err, "failed to load personal info")
		return
	}

	doc, err := h.store.LoadDocument(ctx, userID, resumeID)
	if err != nil {
		h.respondStoreError(c, err, "failed to load resume")
		return
	}

	resp, err := newResumeResponse(&doc.Resume)
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}

	c.JSON(http.StatusOK, editContextResponse{
		Resume:       resp,
		PersonalInfo: *doc.PersonalInfo,
		Experiences:  doc.Experiences,
		Education:    doc.Education,
		Skills:       doc.Skills,
		Projects:     doc.Projects,
		Suggestions:  suggest.Suggestions(doc),
	})
}

// UpdateSettings 更新简历设置；每次成功更新追加一条审计记录。
func (h *ResumeHandler) UpdateSettings(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := resumeIDParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	var req forms.ResumeSettingsForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	ctx := c.Request.Context()
	actor, err := h.store.Username(ctx, userID)
	if err != nil {
		h.respondStoreError(c, err, "failed to resolve user")
		return
	}

	resume, err := h.store.UpdateSettings(ctx, userID, resumeID, req.Settings(), actor)
	if err != nil {
		h.respondStoreError(c, err, "failed to update resume")
		return
	}

	resp, err := newResumeResponse(resume)
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteResume 删除简历及全部子实体；要求显式确认参数。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := resumeIDParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	if c.Query("confirm") != "true" {
		BadRequest(c, "deletion must be confirmed with confirm=true")
		return
	}

	if err := h.store.DeleteResume(c.Request.Context(), userID, resumeID); err != nil {
		h.respondStoreError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

// ViewResume 渲染简历 HTML；未知模板回落到默认布局，不报错。
func (h *ResumeHandler) ViewResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := resumeIDParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	doc, err := h.store.LoadDocument(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.respondStoreError(c, err, "failed to load resume")
		return
	}

	html, err := render.HTML(doc)
	if err != nil {
		h.logger.Error("render resume", slog.Uint64("resume_id", uint64(resumeID)), slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ExportResume 将简历渲染为 PDF 附件下载。
// 渲染后端不可用时向用户报告错误，不产出残缺文件。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := resumeIDParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	doc, err := h.store.LoadDocument(ctx, userID, resumeID)
	if err != nil {
		h.respondStoreError(c, err, "failed to load resume")
		return
	}

	html, err := render.HTML(doc)
	if err != nil {
		h.logger.Error("render resume", slog.Uint64("resume_id", uint64(resumeID)), slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}

	data, err := h.pdfGen.GeneratePDF(ctx, html)
	if err != nil {
		if errors.Is(err, pdf.ErrUnavailable) {
			Error(c, http.StatusServiceUnavailable, "PDF export is not available on this server.")
			return
		}
		h.logger.Error("generate pdf", slog.Uint64("resume_id", uint64(resumeID)), slog.Any("error", err))
		Internal(c, "failed to generate pdf")
		return
	}

	filename := render.ExportFilename(doc.Resume.Title)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// respondStoreError 把存储层错误映射为响应；归属不匹配一律按 not found 处理。
func (h *ResumeHandler) respondStoreError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "resume not found")
		return
	}
	h.logger.Error(fallback, slog.Any("error", err))
	Internal(c, fallback)
}
