// Package store 实现简历及其子实体的持久化操作。
// 所有方法都显式接收操作者（ownerID），归属校验在查询条件中完成，
// 不依赖任何请求级全局状态；归属不匹配一律返回 ErrNotFound。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvforge/internal/database"
)

var (
	// ErrNotFound 表示记录不存在或不属于操作者。
	ErrNotFound = errors.New("record not found")
	// ErrResumeLimit 表示用户简历数量达到限额。
	ErrResumeLimit = errors.New("resume limit reached")
)

// Store 封装数据库访问。
type Store struct {
	db         *gorm.DB
	maxResumes int
}

// New 构造 Store。maxResumes <= 0 表示不限额。
func New(db *gorm.DB, maxResumes int) *Store {
	return &Store{db: db, maxResumes: maxResumes}
}

// ThemeSettings 为简历级自定义主题字段。
type ThemeSettings struct {
	UseCustomTheme bool
	ColorPrimary   string
	ColorSecondary string
	ColorAccent    string
	ColorBg        string
	ColorText      string
	FontFamily     string
}

// ResumeSettings 为简历设置页可写字段。
type ResumeSettings struct {
	Title    string
	Template string
	Theme    ThemeSettings
}

// Document 聚合一份简历与其全部子实体，子集合按约定顺序排列。
type Document struct {
	Resume       database.Resume
	PersonalInfo *database.PersonalInfo
	Experiences  []database.Experience
	Education    []database.Education
	Skills       []database.Skill
	Projects     []database.Project
}

// Username 返回用户名，用于审计记录的操作者字段。
func (s *Store) Username(ctx context.Context, userID uint) (string, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Select("id", "username").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query user: %w", err)
	}
	return user.Username, nil
}

// CreateResume 为用户创建简历，模板为空时落到默认值。
func (s *Store) CreateResume(ctx context.Context, ownerID uint, settings ResumeSettings) (*database.Resume, error) {
	if s.maxResumes > 0 {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&database.Resume{}).
			Where("user_id = ?", ownerID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count resumes: %w", err)
		}
		if count >= int64(s.maxResumes) {
			return nil, ErrResumeLimit
		}
	}

	template := settings.Template
	if template == "" {
		template = "modern"
	}

	resume := database.Resume{
		Title:          settings.Title,
		Template:       template,
		UserID:         &ownerID,
		UseCustomTheme: settings.Theme.UseCustomTheme,
		ColorPrimary:   settings.Theme.ColorPrimary,
		ColorSecondary: settings.Theme.ColorSecondary,
		ColorAccent:    settings.Theme.ColorAccent,
		ColorBg:        settings.Theme.ColorBg,
		ColorText:      settings.Theme.ColorText,
		FontFamily:     settings.Theme.FontFamily,
		History:        datatypes.JSON([]byte("[]")),
	}
	if err := s.db.WithContext(ctx).Create(&resume).Error; err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return &resume, nil
}

// GetResume 返回归属于 ownerID 的简历。
func (s *Store) GetResume(ctx context.Context, ownerID, resumeID uint) (*database.Resume, error) {
	return getResumeTx(s.db.WithContext(ctx), ownerID, resumeID)
}

func getResumeTx(tx *gorm.DB, ownerID, resumeID uint) (*database.Resume, error) {
	var resume database.Resume
	err := tx.Where("id = ? AND user_id = ?", resumeID, ownerID).First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query resume: %w", err)
	}
	return &resume, nil
}

// ListResumes 按最近更新时间倒序列出用户全部简历。
func (s *Store) ListResumes(ctx context.Context, ownerID uint) ([]database.Resume, error) {
	var resumes []database.Resume
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateSettings 更新简历设置并在同一事务中追加一条审计记录。
// 每次成功调用恰好追加一条，已有条目不会被改写。
func (s *Store) UpdateSettings(ctx context.Context, ownerID, resumeID uint, settings ResumeSettings, actor string) (*database.Resume, error) {
	var updated *database.Resume
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := getResumeTx(tx, ownerID, resumeID)
		if err != nil {
			return err
		}

		history, err := appendAudit(resume.History, database.AuditEntry{
			TS:    time.Now().UTC(),
			Event: "updated_settings",
			By:    actor,
		})
		if err != nil {
			return err
		}

		updates := map[string]any{
			"title":            settings.Title,
			"template":         settings.Template,
			"use_custom_theme": settings.Theme.UseCustomTheme,
			"color_primary":    settings.Theme.ColorPrimary,
			"color_secondary":  settings.Theme.ColorSecondary,
			"color_accent":     settings.Theme.ColorAccent,
			"color_bg":         settings.Theme.ColorBg,
			"color_text":       settings.Theme.ColorText,
			"font_family":      settings.Theme.FontFamily,
			"history":          history,
		}
		if err := tx.Model(resume).Updates(updates).Error; err != nil {
			return fmt.Errorf("update resume settings: %w", err)
		}
		if err := tx.First(resume, resume.ID).Error; err != nil {
			return fmt.Errorf("reload resume: %w", err)
		}
		updated = resume
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func appendAudit(raw datatypes.JSON, entry database.AuditEntry) (datatypes.JSON, error) {
	entries := []database.AuditEntry{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode audit history: %w", err)
		}
	}
	entries = append(entries, entry)
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode audit history: %w", err)
	}
	return datatypes.JSON(data), nil
}

// AuditLog 解码简历的审计日志。
func AuditLog(resume *database.Resume) ([]database.AuditEntry, error) {
	entries := []database.AuditEntry{}
	if len(resume.History) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(resume.History, &entries); err != nil {
		return nil, fmt.Errorf("decode audit history: %w", err)
	}
	return entries, nil
}

// DeleteResume 删除简历并在同一事务中级联删除全部子实体。
func (s *Store) DeleteResume(ctx context.Context, ownerID, resumeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := getResumeTx(tx, ownerID, resumeID)
		if err != nil {
			return err
		}

		children := []any{
			&database.PersonalInfo{},
			&database.Experience{},
			&database.Education{},
			&database.Skill{},
			&database.Project{},
		}
		for _, model := range children {
			if err := tx.Where("resume_id = ?", resume.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete resume children: %w", err)
			}
		}
		if err := tx.Delete(&database.Resume{}, resume.ID).Error; err != nil {
			return fmt.Errorf("delete resume: %w", err)
		}
		return nil
	})
}

// GetOrCreatePersonalInfo 幂等地返回简历的个人信息，不存在时创建空记录。
func (s *Store) GetOrCreatePersonalInfo(ctx context.Context, ownerID, resumeID uint) (*database.PersonalInfo, error) {
	var info *database.PersonalInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := getResumeTx(tx, ownerID, resumeID)
		if err != nil {
			return err
		}

		var existing database.PersonalInfo
		err = tx.Where("resume_id = ?", resume.ID).First(&existing).Error
		switch {
		case err == nil:
			info = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := database.PersonalInfo{ResumeID: resume.ID}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("create personal info: %w", err)
			}
			info = &created
			return nil
		default:
			return fmt.Errorf("query personal info: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpsertPersonalInfo 覆盖写入个人信息（保持 1:1 关系）。
func (s *Store) UpsertPersonalInfo(ctx context.Context, ownerID, resumeID uint, fields database.PersonalInfo) (*database.PersonalInfo, error) {
	var info *database.PersonalInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := getResumeTx(tx, ownerID, resumeID)
		if err != nil {
			return err
		}

		var existing database.PersonalInfo
		err = tx.Where("resume_id = ?", resume.ID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("query personal info: %w", err)
		}

		fields.ResumeID = resume.ID
		if err == nil {
			fields.ID = existing.ID
			fields.CreatedAt = existing.CreatedAt
		}
		if err := tx.Save(&fields).Error; err != nil {
			return fmt.Errorf("save personal info: %w", err)
		}
		info = &fields
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// AddExperience 在归属校验通过后追加一条工作经历。
func (s *Store) AddExperience(ctx context.Context, ownerID, resumeID uint, exp database.Experience) (*database.Experience, error) {
	if err := s.createChild(ctx, ownerID, resumeID, func(id uint) any {
		exp.ResumeID = id
		return &exp
	}); err != nil {
		return nil, err
	}
	return &exp, nil
}

// AddEducation 在归属校验通过后追加一条教育经历。
func (s *Store) AddEducation(ctx context.Context, ownerID, resumeID uint, edu database.Education) (*database.Education, error) {
	if err := s.createChild(ctx, ownerID, resumeID, func(id uint) any {
		edu.ResumeID = id
		return &edu
	}); err != nil {
		return nil, err
	}
	return &edu, nil
}

// AddSkill 在归属校验通过后追加一项技能。
func (s *Store) AddSkill(ctx context.Context, ownerID, resumeID uint, skill database.Skill) (*database.Skill, error) {
	if skill.Level == "" {
		skill.Level = "intermediate"
	}
	if err := s.createChild(ctx, ownerID, resumeID, func(id uint) any {
		skill.ResumeID = id
		return &skill
	}); err != nil {
		return nil, err
	}
	return &skill, nil
}

// AddProject 在归属校验通过后追加一个项目。
func (s *Store) AddProject(ctx context.Context, ownerID, resumeID uint, project database.Project) (*database.Project, error) {
	if err := s.createChild(ctx, ownerID, resumeID, func(id uint) any {
		project.ResumeID = id
		return &project
	}); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) createChild(ctx context.Context, ownerID, resumeID uint, build func(resumeID uint) any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := getResumeTx(tx, ownerID, resumeID)
		if err != nil {
			return err
		}
		if err := tx.Create(build(resume.ID)).Error; err != nil {
			return fmt.Errorf("create child record: %w", err)
		}
		return nil
	})
}

// LoadDocument 加载简历与全部子实体。排序约定：
// 经历/教育/项目按开始时间倒序，技能按名称字母序。
func (s *Store) LoadDocument(ctx context.Context, ownerID, resumeID uint) (*Document, error) {
	resume, err := s.GetResume(ctx, ownerID, resumeID)
	if err != nil {
		return nil, err
	}
	return s.loadChildren(ctx, resume)
}

func (s *Store) loadChildren(ctx context.Context, resume *database.Resume) (*Document, error) {
	doc := Document{Resume: *resume}
	db := s.db.WithContext(ctx)

	var info database.PersonalInfo
	err := db.Where("resume_id = ?", resume.ID).First(&info).Error
	switch {
	case err == nil:
		doc.PersonalInfo = &info
	case errors.Is(err, gorm.ErrRecordNotFound):
		// optional, nil means not filled in yet
	default:
		return nil, fmt.Errorf("load personal info: %w", err)
	}

	if err := db.Where("resume_id = ?", resume.ID).
		Order("start_date DESC").
		Find(&doc.Experiences).Error; err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	if err := db.Where("resume_id = ?", resume.ID).
		Order("start_date DESC").
		Find(&doc.Education).Error; err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	if err := db.Where("resume_id = ?", resume.ID).
		Order("name ASC").
		Find(&doc.Skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	if err := db.Where("resume_id = ?", resume.ID).
		Order("start_date DESC").
		Find(&doc.Projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return &doc, nil
}
