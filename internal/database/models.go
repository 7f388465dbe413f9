package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历文档，是所有子实体的归属根。
// UserID 允许为空以兼容历史遗留的匿名记录，但写接口始终要求归属校验。
type Resume struct {
	gorm.Model
	Title          string `gorm:"size:200"`
	Template       string `gorm:"size:20;default:modern"`
	UserID         *uint  `gorm:"index"`
	User           *User  `gorm:"constraint:OnDelete:CASCADE"`
	UseCustomTheme bool   `gorm:"default:false"`
	ColorPrimary   string `gorm:"size:32"`
	ColorSecondary string `gorm:"size:32"`
	ColorAccent    string `gorm:"size:32"`
	ColorBg        string `gorm:"size:32"`
	ColorText      string `gorm:"size:32"`
	FontFamily     string `gorm:"size:64"`
	// History 为只追加的审计日志（JSONB 数组），任何操作不得改写或截断已有条目。
	History datatypes.JSON `gorm:"type:jsonb"`

	PersonalInfo *PersonalInfo `gorm:"constraint:OnDelete:CASCADE"`
	Experiences  []Experience  `gorm:"constraint:OnDelete:CASCADE"`
	Education    []Education   `gorm:"constraint:OnDelete:CASCADE"`
	Skills       []Skill       `gorm:"constraint:OnDelete:CASCADE"`
	Projects     []Project     `gorm:"constraint:OnDelete:CASCADE"`
}

// AuditEntry 是 Resume.History 中的单条审计记录。
type AuditEntry struct {
	TS    time.Time `json:"ts"`
	Event string    `json:"event"`
	By    string    `json:"by"`
}

// PersonalInfo 与 Resume 一对一，随简历级联删除。
type PersonalInfo struct {
	gorm.Model
	ResumeID  uint   `gorm:"uniqueIndex"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Email     string `gorm:"size:254"`
	Phone     string `gorm:"size:20"`
	Address   string
	City      string `gorm:"size:100"`
	State     string `gorm:"size:100"`
	ZipCode   string `gorm:"size:20"`
	Country   string `gorm:"size:100"`
	LinkedIn  string `gorm:"size:255"`
	Website   string `gorm:"size:255"`
	PhotoURL  string `gorm:"size:512"`
	Summary   string
}

// Experience 表示一段工作经历。Current 与 EndDate 互斥，由表单层保证。
type Experience struct {
	gorm.Model
	ResumeID    uint   `gorm:"index"`
	Company     string `gorm:"size:200"`
	Position    string `gorm:"size:200"`
	Location    string `gorm:"size:200"`
	StartDate   time.Time
	EndDate     *time.Time
	Current     bool `gorm:"default:false"`
	Description string
}

// Education 表示一段教育经历。
type Education struct {
	gorm.Model
	ResumeID     uint   `gorm:"index"`
	Institution  string `gorm:"size:200"`
	Degree       string `gorm:"size:200"`
	FieldOfStudy string `gorm:"size:200"`
	Location     string `gorm:"size:200"`
	StartDate    time.Time
	EndDate      *time.Time
	Current      bool     `gorm:"default:false"`
	GPA          *float64 `gorm:"type:decimal(3,2)"`
	Description  string
}

// Skill 表示一项技能及熟练度。
type Skill struct {
	gorm.Model
	ResumeID uint   `gorm:"index"`
	Name     string `gorm:"size:100"`
	Level    string `gorm:"size:20;default:intermediate"`
}

// Project 表示一个项目条目。
type Project struct {
	gorm.Model
	ResumeID     uint   `gorm:"index"`
	Title        string `gorm:"size:200"`
	Description  string
	Technologies string `gorm:"size:200"`
	URL          string `gorm:"size:255"`
	GithubURL    string `gorm:"size:255"`
	StartDate    *time.Time
	EndDate      *time.Time
}

// AllModels 返回需要迁移的全部模型。
func AllModels() []any {
	return []any{
		&User{},
		&Resume{},
		&PersonalInfo{},
		&Experience{},
		&Education{},
		&Skill{},
		&Project{},
	}
}
