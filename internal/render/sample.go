package render

import (
	"time"

	"cvforge/internal/database"
	"cvforge/internal/store"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SampleDocument 构建模板画廊预览用的示例文档。
// 产出与真实数据相同的实体形态，渲染器因此只有一条代码路径。
func SampleDocument(templateKey string) *store.Document {
	start := date(2021, time.March, 1)
	eduStart := date(2015, time.September, 1)
	eduEnd := date(2019, time.June, 1)
	gpa := 3.7

	return &store.Document{
		Resume: database.Resume{
			Title:    "Sample Resume",
			Template: templateKey,
		},
		PersonalInfo: &database.PersonalInfo{
			FirstName: "Jamie",
			LastName:  "Smith",
			Email:     "jamie@example.com",
			Phone:     "+1 555 111 2222",
			Address:   "123 Main St",
			City:      "NYC",
			State:     "NY",
			ZipCode:   "10001",
			Country:   "USA",
			LinkedIn:  "https://linkedin.com/in/jamiesmith",
			Website:   "https://jamie.dev",
			PhotoURL:  "https://placehold.co/140x140",
			Summary:   "Creative problem-solver.",
		},
		Experiences: []database.Experience{
			{
				Company:     "Acme",
				Position:    "Engineer",
				Location:    "NY",
				StartDate:   start,
				Current:     true,
				Description: "Built scalable services, mentored engineers, led delivery.",
			},
		},
		Education: []database.Education{
			{
				Institution:  "State University",
				Degree:       "B.Sc. Computer Science",
				FieldOfStudy: "Computer Science",
				Location:     "NY",
				StartDate:    eduStart,
				EndDate:      &eduEnd,
				GPA:          &gpa,
				Description:  "Honors",
			},
		},
		Skills: []database.Skill{
			{Name: "Go", Level: "advanced"},
			{Name: "PostgreSQL", Level: "advanced"},
			{Name: "Docker", Level: "intermediate"},
			{Name: "REST APIs", Level: "expert"},
		},
		Projects: []database.Project{
			{
				Title:        "Project Atlas",
				Description:  "Platform for analytics with dashboards and APIs.",
				Technologies: "Go, PostgreSQL, React",
				GithubURL:    "https://github.com/example/project",
			},
		},
	}
}
