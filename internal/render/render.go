// Package render 将模板标识解析为布局定义并渲染简历 HTML。
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"cvforge/internal/database"
	"cvforge/internal/store"
)

const displayDateLayout = "Jan 2006"

var pageTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	// safeCSS 用于把配色/字体注入 <style>；调色板取值在校验层约束过。
	"safeCSS": func(s string) template.CSS { return template.CSS(s) },
	"dateRange": func(start time.Time, end *time.Time, current bool) string {
		return formatRange(&start, end, current)
	},
	"dateRangeOpt": func(start, end *time.Time) string {
		return formatRange(start, end, false)
	},
	"deref": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
	"levelName": func(level string) string {
		if level == "" {
			return "Intermediate"
		}
		return strings.ToUpper(level[:1]) + level[1:]
	},
}).Parse(resumeTemplateString))

func formatRange(start, end *time.Time, current bool) string {
	if start == nil {
		return ""
	}
	from := start.Format(displayDateLayout)
	switch {
	case current:
		return from + " – Present"
	case end != nil:
		return from + " – " + end.Format(displayDateLayout)
	default:
		return from
	}
}

type viewData struct {
	Layout      Layout
	Title       string
	FullName    string
	Resume      database.Resume
	Info        *database.PersonalInfo
	Experiences []database.Experience
	Education   []database.Education
	Skills      []database.Skill
	Projects    []database.Project
}

// HTML 渲染一份简历文档。布局解析遵循 custom 路由与默认布局兜底，
// 因此对任何模板标识都不会失败。
func HTML(doc *store.Document) (string, error) {
	layout := LayoutFor(&doc.Resume)
	return execute(layout, doc)
}

// PreviewHTML 用内置示例数据渲染任意模板标识（未知标识回落到默认布局）。
func PreviewHTML(templateKey string) (string, error) {
	doc := SampleDocument(templateKey)
	return HTML(doc)
}

func execute(layout Layout, doc *store.Document) (string, error) {
	data := viewData{
		Layout:      layout,
		Title:       doc.Resume.Title,
		Resume:      doc.Resume,
		Experiences: doc.Experiences,
		Education:   doc.Education,
		Skills:      doc.Skills,
		Projects:    doc.Projects,
	}
	if doc.PersonalInfo != nil {
		data.Info = doc.PersonalInfo
		data.FullName = strings.TrimSpace(doc.PersonalInfo.FirstName + " " + doc.PersonalInfo.LastName)
	}
	if data.Title == "" {
		data.Title = "Resume"
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render resume template: %w", err)
	}
	return buf.String(), nil
}

// ExportFilename 根据简历标题导出 PDF 文件名：空格替换为下划线。
func ExportFilename(title string) string {
	name := strings.ReplaceAll(title, " ", "_")
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}
