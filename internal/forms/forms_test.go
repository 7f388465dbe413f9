package forms

import (
	"testing"
)

func validExperience() ExperienceForm {
	return ExperienceForm{
		Company:     "Acme Corp",
		Position:    "Software Engineer",
		StartDate:   "2021-06-01",
		Description: "Built things.",
	}
}

func TestExperienceForm_CurrentAndEndDateMutuallyExclusive(t *testing.T) {
	f := validExperience()
	f.Current = true
	f.EndDate = "2023-01-31"

	_, errs := f.Validate()
	if len(errs) == 0 {
		t.Fatal("expected validation errors")
	}
	if got := errs["end_date"]; got != "If this is your current position, leave the end date empty." {
		t.Fatalf("unexpected end_date message: %q", got)
	}
}

func TestExperienceForm_CurrentWithoutEndDate(t *testing.T) {
	f := validExperience()
	f.Current = true

	exp, errs := f.Validate()
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !exp.Current || exp.EndDate != nil {
		t.Fatalf("unexpected model: current=%v end=%v", exp.Current, exp.EndDate)
	}
}

func TestExperienceForm_PastPositionWithEndDate(t *testing.T) {
	f := validExperience()
	f.EndDate = "2023-01-31"

	exp, errs := f.Validate()
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if exp.EndDate == nil {
		t.Fatal("expected end date to be set")
	}
}

func TestExperienceForm_RequiredFields(t *testing.T) {
	_, errs := ExperienceForm{}.Validate()
	for _, field := range []string{"company", "position", "start_date", "description"} {
		if errs[field] != "This field is required." {
			t.Fatalf("expected required error for %s, got %q", field, errs[field])
		}
	}
}

func TestExperienceForm_InvalidDate(t *testing.T) {
	f := validExperience()
	f.StartDate = "06/01/2021"

	_, errs := f.Validate()
	if errs["start_date"] != "Enter a valid date (YYYY-MM-DD)." {
		t.Fatalf("unexpected start_date message: %q", errs["start_date"])
	}
}

func validEducation() EducationForm {
	return EducationForm{
		Institution: "State University",
		Degree:      "BSc",
		StartDate:   "2016-09-01",
	}
}

func TestEducationForm_CurrentAndEndDateMutuallyExclusive(t *testing.T) {
	f := validEducation()
	f.Current = true
	f.EndDate = "2020-06-30"

	_, errs := f.Validate()
	if got := errs["end_date"]; got != "If this is your current education, leave the end date empty." {
		t.Fatalf("unexpected end_date message: %q", got)
	}
}

func TestEducationForm_GPA(t *testing.T) {
	cases := []struct {
		name    string
		gpa     string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", "3.75", false},
		{"integer", "4", false},
		{"too high", "4.5", true},
		{"negative", "-1", true},
		{"too precise", "3.123", true},
		{"not a number", "three", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validEducation()
			f.GPA = tc.gpa
			edu, errs := f.Validate()
			if tc.wantErr {
				if errs["gpa"] == "" {
					t.Fatalf("expected gpa error for %q", tc.gpa)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if tc.gpa != "" && edu.GPA == nil {
				t.Fatal("expected gpa to be set")
			}
		})
	}
}

func TestResumeSettingsForm_UnknownTemplate(t *testing.T) {
	f := ResumeSettingsForm{Title: "My Resume", Template: "nonexistent"}
	errs := f.Validate()
	if errs["template"] != "Select a valid template." {
		t.Fatalf("unexpected template message: %q", errs["template"])
	}
}

func TestResumeSettingsForm_CustomColors(t *testing.T) {
	f := ResumeSettingsForm{
		Title:          "My Resume",
		Template:       "custom",
		UseCustomTheme: true,
		ColorPrimary:   "#1a2b3c",
		ColorAccent:    "not-a-color",
	}
	errs := f.Validate()
	if _, ok := errs["color_primary"]; ok {
		t.Fatal("valid hex color rejected")
	}
	if errs["color_accent"] != "Enter a color like #1a2b3c." {
		t.Fatalf("unexpected color_accent message: %q", errs["color_accent"])
	}
}

func TestPersonalInfoForm_Email(t *testing.T) {
	f := PersonalInfoForm{FirstName: "Jamie", LastName: "Smith", Email: "not-an-email"}
	errs := f.Validate()
	if errs["email"] != "Enter a valid email address." {
		t.Fatalf("unexpected email message: %q", errs["email"])
	}

	f.Email = "jamie@example.com"
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestPersonalInfoForm_OptionalURLs(t *testing.T) {
	f := PersonalInfoForm{FirstName: "Jamie", LastName: "Smith", Email: "jamie@example.com", Website: "not a url"}
	errs := f.Validate()
	if errs["website"] != "Enter a valid URL." {
		t.Fatalf("unexpected website message: %q", errs["website"])
	}
}

func TestSkillForm_DefaultAndInvalidLevel(t *testing.T) {
	skill, errs := SkillForm{Name: "Go"}.Validate()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if skill.Level != "intermediate" {
		t.Fatalf("expected default level, got %q", skill.Level)
	}

	_, errs = SkillForm{Name: "Go", Level: "wizard"}.Validate()
	if errs["level"] != "Select a valid skill level." {
		t.Fatalf("unexpected level message: %q", errs["level"])
	}
}

func TestProjectForm_OptionalDates(t *testing.T) {
	project, errs := ProjectForm{Title: "cvforge", Description: "Resume builder."}.Validate()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if project.StartDate != nil || project.EndDate != nil {
		t.Fatal("expected nil dates when omitted")
	}
}
