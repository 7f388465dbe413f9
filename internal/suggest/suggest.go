// Package suggest 根据简历完整度计算建议文案。
// 纯函数：不读库、不写库、不缓存，每次编辑视图渲染时重新计算。
package suggest

import "cvforge/internal/store"

var projectTemplates = map[string]struct{}{
	"tech":      {},
	"developer": {},
	"creative":  {},
}

var linkedinTemplates = map[string]struct{}{
	"executive":    {},
	"professional": {},
	"corporate":    {},
}

// Suggestions 按固定顺序返回所有适用的建议；规则之间互不排斥。
func Suggestions(doc *store.Document) []string {
	suggestions := []string{}
	info := doc.PersonalInfo

	if info == nil || info.FirstName == "" || info.LastName == "" {
		suggestions = append(suggestions, "Add your first and last name to personalize the header.")
	}
	if info == nil || info.Summary == "" {
		suggestions = append(suggestions, "Write a concise professional summary (2-3 sentences).")
	}
	if len(doc.Experiences) == 0 {
		suggestions = append(suggestions, "Add at least one work experience with achievements using action verbs.")
	}
	if len(doc.Education) == 0 {
		suggestions = append(suggestions, "Include your most relevant education with degree and institution.")
	}
	if len(doc.Skills) < 5 {
		suggestions = append(suggestions, "List 5-10 key skills that match the job description.")
	}
	if _, ok := projectTemplates[doc.Resume.Template]; ok && len(doc.Projects) == 0 {
		suggestions = append(suggestions, "Showcase 1-2 projects with links and your role/impact.")
	}
	if _, ok := linkedinTemplates[doc.Resume.Template]; ok && (info == nil || info.LinkedIn == "") {
		suggestions = append(suggestions, "Add your LinkedIn profile for professional credibility.")
	}

	return suggestions
}
