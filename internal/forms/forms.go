// Package forms 实现各实体的写前校验，产出 field -> message 的错误映射。
// 校验失败时调用方不得落库。
package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cvforge/internal/database"
	"cvforge/internal/render"
	"cvforge/internal/store"
)

const dateLayout = "2006-01-02"

var (
	validate = validator.New()

	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Enter a valid email address."
	msgInvalidURL   = "Enter a valid URL."
	msgInvalidDate  = "Enter a valid date (YYYY-MM-DD)."
	msgInvalidColor = "Enter a color like #1a2b3c."
)

// Errors 是字段到错误信息的映射；len == 0 表示校验通过。
type Errors map[string]string

func (e Errors) add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func checkEmail(errs Errors, field, value string, required bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			errs.add(field, msgRequired)
		}
		return
	}
	if err := validate.Var(value, "email"); err != nil {
		errs.add(field, msgInvalidEmail)
	}
}

func checkURL(errs Errors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if err := validate.Var(value, "http_url"); err != nil {
		errs.add(field, msgInvalidURL)
	}
}

func checkRequired(errs Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.add(field, msgRequired)
	}
}

func parseDate(errs Errors, field, value string, required bool) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			errs.add(field, msgRequired)
		}
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		errs.add(field, msgInvalidDate)
		return nil
	}
	return &t
}

// ResumeSettingsForm 对应简历设置（标题、模板与自定义主题）。
type ResumeSettingsForm struct {
	Title          string `json:"title" form:"title"`
	Template       string `json:"template" form:"template"`
	UseCustomTheme bool   `json:"use_custom_theme" form:"use_custom_theme"`
	ColorPrimary   string `json:"color_primary" form:"color_primary"`
	ColorSecondary string `json:"color_secondary" form:"color_secondary"`
	ColorAccent    string `json:"color_accent" form:"color_accent"`
	ColorBg        string `json:"color_bg" form:"color_bg"`
	ColorText      string `json:"color_text" form:"color_text"`
	FontFamily     string `json:"font_family" form:"font_family"`
}

// Validate 校验设置表单。模板必须是注册表中的键。
func (f ResumeSettingsForm) Validate() Errors {
	errs := Errors{}
	checkRequired(errs, "title", f.Title)
	checkRequired(errs, "template", f.Template)
	if f.Template != "" && !render.Known(f.Template) {
		errs.add("template", "Select a valid template.")
	}
	if f.UseCustomTheme {
		colors := map[string]string{
			"color_primary":   f.ColorPrimary,
			"color_secondary": f.ColorSecondary,
			"color_accent":    f.ColorAccent,
			"color_bg":        f.ColorBg,
			"color_text":      f.ColorText,
		}
		for field, value := range colors {
			if value != "" && !hexColorRe.MatchString(value) {
				errs.add(field, msgInvalidColor)
			}
		}
	}
	return errs
}

// Settings 转换为存储层写入结构。
func (f ResumeSettingsForm) Settings() store.ResumeSettings {
	return store.ResumeSettings{
		Title:    f.Title,
		Template: f.Template,
		Theme: store.ThemeSettings{
			UseCustomTheme: f.UseCustomTheme,
			ColorPrimary:   f.ColorPrimary,
			ColorSecondary: f.ColorSecondary,
			ColorAccent:    f.ColorAccent,
			ColorBg:        f.ColorBg,
			ColorText:      f.ColorText,
			FontFamily:     f.FontFamily,
		},
	}
}

// PersonalInfoForm 对应个人信息表单。
type PersonalInfoForm struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Address   string `json:"address" form:"address"`
	City      string `json:"city" form:"city"`
	State     string `json:"state" form:"state"`
	ZipCode   string `json:"zip_code" form:"zip_code"`
	Country   string `json:"country" form:"country"`
	LinkedIn  string `json:"linkedin" form:"linkedin"`
	Website   string `json:"website" form:"website"`
	PhotoURL  string `json:"photo_url" form:"photo_url"`
	Summary   string `json:"summary" form:"summary"`
}

// Validate 校验个人信息。
func (f PersonalInfoForm) Validate() Errors {
	errs := Errors{}
	checkRequired(errs, "first_name", f.FirstName)
	checkRequired(errs, "last_name", f.LastName)
	checkEmail(errs, "email", f.Email, true)
	checkURL(errs, "linkedin", f.LinkedIn)
	checkURL(errs, "website", f.Website)
	checkURL(errs, "photo_url", f.PhotoURL)
	return errs
}

// Model 转换为数据库模型（不含 ResumeID）。
func (f PersonalInfoForm) Model() database.PersonalInfo {
	return database.PersonalInfo{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
		Country:   f.Country,
		LinkedIn:  f.LinkedIn,
		Website:   f.Website,
		PhotoURL:  f.PhotoURL,
		Summary:   f.Summary,
	}
}

// ExperienceForm 对应工作经历表单。
type ExperienceForm struct {
	Company     string `json:"company" form:"company"`
	Position    string `json:"position" form:"position"`
	Location    string `json:"location" form:"location"`
	StartDate   string `json:"start_date" form:"start_date"`
	EndDate     string `json:"end_date" form:"end_date"`
	Current     bool   `json:"current" form:"current"`
	Description string `json:"description" form:"description"`
}

// Validate 校验工作经历。Current 与 EndDate 互斥，与其他字段取值无关。
func (f ExperienceForm) Validate() (database.Experience, Errors) {
	errs := Errors{}
	checkRequired(errs, "company", f.Company)
	checkRequired(errs, "position", f.Position)
	checkRequired(errs, "description", f.Description)
	start := parseDate(errs, "start_date", f.StartDate, true)
	end := parseDate(errs, "end_date", f.EndDate, false)

	if f.Current && strings.TrimSpace(f.EndDate) != "" {
		errs.add("end_date", "If this is your current position, leave the end date empty.")
	}
	if len(errs) > 0 {
		return database.Experience{}, errs
	}

	return database.Experience{
		Company:     f.Company,
		Position:    f.Position,
		Location:    f.Location,
		StartDate:   *start,
		EndDate:     end,
		Current:     f.Current,
		Description: f.Description,
	}, errs
}

// EducationForm 对应教育经历表单。
type EducationForm struct {
	Institution  string `json:"institution" form:"institution"`
	Degree       string `json:"degree" form:"degree"`
	FieldOfStudy string `json:"field_of_study" form:"field_of_study"`
	Location     string `json:"location" form:"location"`
	StartDate    string `json:"start_date" form:"start_date"`
	EndDate      string `json:"end_date" form:"end_date"`
	Current      bool   `json:"current" form:"current"`
	GPA          string `json:"gpa" form:"gpa"`
	Description  string `json:"description" form:"description"`
}

// Validate 校验教育经历，互斥规则与工作经历一致；GPA 超出 0–4 或精度超限时拒绝。
func (f EducationForm) Validate() (database.Education, Errors) {
	errs := Errors{}
	checkRequired(errs, "institution", f.Institution)
	checkRequired(errs, "degree", f.Degree)
	start := parseDate(errs, "start_date", f.StartDate, true)
	end := parseDate(errs, "end_date", f.EndDate, false)

	if f.Current && strings.TrimSpace(f.EndDate) != "" {
		errs.add("end_date", "If this is your current education, leave the end date empty.")
	}

	var gpa *float64
	if raw := strings.TrimSpace(f.GPA); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			errs.add("gpa", "Enter a number.")
		case value < 0 || value > 4:
			errs.add("gpa", "GPA must be between 0.00 and 4.00.")
		case decimalPlaces(raw) > 2:
			errs.add("gpa", "GPA supports at most 2 decimal places.")
		default:
			gpa = &value
		}
	}

	if len(errs) > 0 {
		return database.Education{}, errs
	}

	return database.Education{
		Institution:  f.Institution,
		Degree:       f.Degree,
		FieldOfStudy: f.FieldOfStudy,
		Location:     f.Location,
		StartDate:    *start,
		EndDate:      end,
		Current:      f.Current,
		GPA:          gpa,
		Description:  f.Description,
	}, errs
}

func decimalPlaces(raw string) int {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return len(raw) - i - 1
	}
	return 0
}

// SkillLevels 为合法的技能熟练度取值。
var SkillLevels = []string{"beginner", "intermediate", "advanced", "expert"}

// SkillForm 对应技能表单。
type SkillForm struct {
	Name  string `json:"name" form:"name"`
	Level string `json:"level" form:"level"`
}

// Validate 校验技能；Level 为空时默认 intermediate。
func (f SkillForm) Validate() (database.Skill, Errors) {
	errs := Errors{}
	checkRequired(errs, "name", f.Name)

	level := strings.TrimSpace(f.Level)
	if level == "" {
		level = "intermediate"
	}
	valid := false
	for _, known := range SkillLevels {
		if level == known {
			valid = true
			break
		}
	}
	if !valid {
		errs.add("level", "Select a valid skill level.")
	}

	if len(errs) > 0 {
		return database.Skill{}, errs
	}
	return database.Skill{Name: f.Name, Level: level}, errs
}

// ProjectForm 对应项目表单。
type ProjectForm struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Technologies string `json:"technologies" form:"technologies"`
	URL          string `json:"url" form:"url"`
	GithubURL    string `json:"github_url" form:"github_url"`
	StartDate    string `json:"start_date" form:"start_date"`
	EndDate      string `json:"end_date" form:"end_date"`
}

// Validate 校验项目条目。
func (f ProjectForm) Validate() (database.Project, Errors) {
	errs := Errors{}
	checkRequired(errs, "title", f.Title)
	checkRequired(errs, "description", f.Description)
	checkURL(errs, "url", f.URL)
	checkURL(errs, "github_url", f.GithubURL)
	start := parseDate(errs, "start_date", f.StartDate, false)
	end := parseDate(errs, "end_date", f.EndDate, false)

	if len(errs) > 0 {
		return database.Project{}, errs
	}

	return database.Project{
		Title:        f.Title,
		Description:  f.Description,
		Technologies: f.Technologies,
		URL:          f.URL,
		GithubURL:    f.GithubURL,
		StartDate:    start,
		EndDate:      end,
	}, errs
}
