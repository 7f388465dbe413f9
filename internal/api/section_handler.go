package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge/internal/forms"
	"cvforge/internal/store"
)

// SectionHandler 处理简历子实体的写入：个人信息、经历、教育、技能、项目。
// 校验失败时返回逐字段错误且不落库。
type SectionHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSectionHandler 构造 SectionHandler。
func NewSectionHandler(st *store.Store, logger *slog.Logger) *SectionHandler {
	return &SectionHandler{store: st, logger: logger}
}

// UpsertPersonalInfo 写入个人信息；每份简历仅一条记录，重复提交覆盖原值。
func (h *SectionHandler) UpsertPersonalInfo(c *gin.Context) {
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

	var req forms.PersonalInfoForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	info, err := h.store.UpsertPersonalInfo(c.Request.Context(), userID, resumeID, req.Model())
	if err != nil {
		h.respondStoreError(c, err, "failed to save personal info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": info.ID})
}

// AddExperience 新增一条工作经历。
func (h *SectionHandler) AddExperience(c *gin.Context) {
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

	var req forms.ExperienceForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	exp, errs := req.Validate()
	if len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	created, err := h.store.AddExperience(c.Request.Context(), userID, resumeID, exp)
	if err != nil {
		h.respondStoreError(c, err, "failed to save experience")
		return
	}
	CreatedID(c, created.ID)
}

// AddEducation 新增一条教育经历。
func (h *SectionHandler) AddEducation(c *gin.Context) {
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

	var req forms.EducationForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	edu, errs := req.Validate()
	if len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	created, err := h.store.AddEducation(c.Request.Context(), userID, resumeID, edu)
	if err != nil {
		h.respondStoreError(c, err, "failed to save education")
		return
	}
	CreatedID(c, created.ID)
}

// AddSkill 新增一项技能；未指定熟练度时默认 intermediate。
func (h *SectionHandler) AddSkill(c *gin.Context) {
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

	var req forms.SkillForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	skill, errs := req.Validate()
	if len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	created, err := h.store.AddSkill(c.Request.Context(), userID, resumeID, skill)
	if err != nil {
		h.respondStoreError(c, err, "failed to save skill")
		return
	}
	CreatedID(c, created.ID)
}

// AddProject 新增一个项目条目。
func (h *SectionHandler) AddProject(c *gin.Context) {
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

	var req forms.ProjectForm
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, errs := req.Validate()
	if len(errs) > 0 {
		FieldErrors(c, errs)
		return
	}

	created, err := h.store.AddProject(c.Request.Context(), userID, resumeID, project)
	if err != nil {
		h.respondStoreError(c, err, "failed to save project")
		return
	}
	CreatedID(c, created.ID)
}

func (h *SectionHandler) respondStoreError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "resume not found")
		return
	}
	h.logger.Error(fallback, slog.Any("error", err))
	Internal(c, fallback)
}
