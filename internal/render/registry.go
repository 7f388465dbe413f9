package render

import "cvforge/internal/database"

// DefaultKey 是模板解析失败时的兜底布局。
const DefaultKey = "modern"

// CustomKey 路由到自定义主题布局。
const CustomKey = "custom"

// Palette 定义一套布局的五色与字体。
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Bg        string
	Text      string
	Font      string
}

// Layout 是模板标识到视觉布局的映射条目。
type Layout struct {
	Key         string
	Name        string
	Description string
	Palette     Palette
	// Sidebar 为真时渲染左栏（联系方式与技能）+ 右栏主内容。
	Sidebar bool
	// ShowPhoto 为真时在页眉渲染照片（若有）。
	ShowPhoto bool
	// Serif 为真时标题使用衬线字体风格。
	Serif bool
}

var fontSans = "Helvetica, Arial, sans-serif"
var fontSerif = "Georgia, 'Times New Roman', serif"
var fontMono = "'Courier New', monospace"

// layouts 按注册顺序保存全部内建布局；custom 不在其中，单独路由。
var layouts = []Layout{
	{Key: "modern", Name: "Modern", Palette: Palette{"#2c3e50", "#7f8c8d", "#3498db", "#ffffff", "#2d3436", fontSans}},
	{Key: "classic", Name: "Classic", Serif: true, Palette: Palette{"#1b1b1b", "#555555", "#8b0000", "#ffffff", "#222222", fontSerif}},
	{Key: "creative", Name: "Creative", ShowPhoto: true, Palette: Palette{"#6c5ce7", "#a29bfe", "#fd79a8", "#fffdfa", "#2d3436", fontSans}},
	{Key: "minimal", Name: "Minimal", Palette: Palette{"#000000", "#999999", "#000000", "#ffffff", "#111111", fontSans}},
	{Key: "elegant", Name: "Elegant", Serif: true, ShowPhoto: true, Palette: Palette{"#3d3d3d", "#8d8d8d", "#b08d57", "#fcfbf9", "#333333", fontSerif}},
	{Key: "professional", Name: "Professional", Palette: Palette{"#1f3a5f", "#5d7599", "#2e75b6", "#ffffff", "#1f2933", fontSans}},
	{Key: "executive", Name: "Executive", Serif: true, Palette: Palette{"#14213d", "#4a5568", "#c9a227", "#ffffff", "#1a202c", fontSerif}},
	{Key: "tech", Name: "Tech", Palette: Palette{"#0f172a", "#64748b", "#06b6d4", "#f8fafc", "#0f172a", fontMono}},
	{Key: "simple", Name: "Simple", Palette: Palette{"#333333", "#777777", "#333333", "#ffffff", "#333333", fontSans}},
	{Key: "bold", Name: "Bold", Palette: Palette{"#d90429", "#2b2d42", "#ef233c", "#ffffff", "#2b2d42", fontSans}},
	{Key: "compact", Name: "Compact", Palette: Palette{"#37474f", "#78909c", "#00897b", "#ffffff", "#263238", fontSans}},
	{Key: "timeline", Name: "Timeline", Palette: Palette{"#264653", "#7a8b8f", "#e76f51", "#ffffff", "#22333b", fontSans}},
	{Key: "sidebar", Name: "Sidebar", Sidebar: true, ShowPhoto: true, Palette: Palette{"#1d3557", "#6c849b", "#457b9d", "#f1faee", "#1d3557", fontSans}},
	{Key: "infographic", Name: "Infographic", Sidebar: true, Palette: Palette{"#2a9d8f", "#577590", "#f4a261", "#ffffff", "#264653", fontSans}},
	{Key: "corporate", Name: "Corporate", Palette: Palette{"#1c2833", "#566573", "#1f618d", "#ffffff", "#17202a", fontSans}},
	{Key: "academic", Name: "Academic", Serif: true, Palette: Palette{"#3e2723", "#795548", "#5d4037", "#fffdfa", "#2d1b16", fontSerif}},
	{Key: "graduate", Name: "Graduate", Palette: Palette{"#283593", "#5c6bc0", "#3949ab", "#ffffff", "#1a237e", fontSans}},
	{Key: "junior", Name: "Junior", Palette: Palette{"#00695c", "#4db6ac", "#00897b", "#ffffff", "#004d40", fontSans}},
	{Key: "senior", Name: "Senior", Serif: true, Palette: Palette{"#37353a", "#6f6b75", "#845ec2", "#ffffff", "#2c2a30", fontSerif}},
	{Key: "developer", Name: "Developer", Palette: Palette{"#24292e", "#6a737d", "#0366d6", "#fafbfc", "#24292e", fontMono}},
	{Key: "gradient", Name: "Gradient", ShowPhoto: true, Palette: Palette{"#7f00ff", "#9b59b6", "#e100ff", "#ffffff", "#2d3436", fontSans}},
	{Key: "mono", Name: "Monochrome", Palette: Palette{"#000000", "#666666", "#000000", "#ffffff", "#000000", fontMono}},
	{Key: "photo-left", Name: "Photo Left", Sidebar: true, ShowPhoto: true, Palette: Palette{"#34495e", "#7f8c8d", "#16a085", "#ffffff", "#2c3e50", fontSans}},
	{Key: "card", Name: "Card Sections", Palette: Palette{"#455a64", "#90a4ae", "#ff7043", "#eceff1", "#263238", fontSans}},
	{Key: "material", Name: "Material", Palette: Palette{"#1976d2", "#64b5f6", "#ffc107", "#ffffff", "#212121", fontSans}},
	{Key: "neon", Name: "Neon", Palette: Palette{"#0ff0fc", "#7b2ff7", "#f72585", "#10002b", "#e0e0e0", fontSans}},
	{Key: "pastel", Name: "Pastel", ShowPhoto: true, Palette: Palette{"#b5838d", "#e5989b", "#6d6875", "#fff6f4", "#4a4e69", fontSans}},
	{Key: "newspaper", Name: "Newspaper", Serif: true, Palette: Palette{"#121212", "#484848", "#121212", "#fdfcf8", "#121212", fontSerif}},
	{Key: "grid", Name: "Grid", Palette: Palette{"#212529", "#868e96", "#fa5252", "#ffffff", "#212529", fontSans}},
}

var layoutIndex = buildIndex()

func buildIndex() map[string]Layout {
	index := make(map[string]Layout, len(layouts))
	for _, l := range layouts {
		index[l.Key] = l
	}
	return index
}

// Known 报告模板标识是否可解析（含 custom）。
func Known(key string) bool {
	if key == CustomKey {
		return true
	}
	_, ok := layoutIndex[key]
	return ok
}

// Resolve 返回标识对应的布局，未知标识回落到默认布局而非报错。
func Resolve(key string) Layout {
	if l, ok := layoutIndex[key]; ok {
		return l
	}
	return layoutIndex[DefaultKey]
}

// List 按注册顺序返回全部内建布局（用于模板画廊）。
func List() []Layout {
	out := make([]Layout, len(layouts))
	copy(out, layouts)
	for i := range out {
		if out[i].Description == "" {
			out[i].Description = out[i].Name + " resume layout"
		}
	}
	return out
}

// LayoutFor 解析一份简历实际使用的布局。
// use_custom_theme 为真或模板为 custom 时，使用主题覆盖字段构建布局，
// 缺失的覆盖值逐字段回落到默认布局的配色。
func LayoutFor(resume *database.Resume) Layout {
	if resume.UseCustomTheme || resume.Template == CustomKey {
		return customLayout(resume)
	}
	return Resolve(resume.Template)
}

func customLayout(resume *database.Resume) Layout {
	base := layoutIndex[DefaultKey]
	p := base.Palette
	if resume.ColorPrimary != "" {
		p.Primary = resume.ColorPrimary
	}
	if resume.ColorSecondary != "" {
		p.Secondary = resume.ColorSecondary
	}
	if resume.ColorAccent != "" {
		p.Accent = resume.ColorAccent
	}
	if resume.ColorBg != "" {
		p.Bg = resume.ColorBg
	}
	if resume.ColorText != "" {
		p.Text = resume.ColorText
	}
	if resume.FontFamily != "" {
		p.Font = resume.FontFamily
	}
	return Layout{
		Key:         CustomKey,
		Name:        "Custom Theme",
		Description: "Custom themed resume layout",
		Palette:     p,
		ShowPhoto:   base.ShowPhoto,
	}
}
