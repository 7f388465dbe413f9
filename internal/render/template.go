package render

// resumeTemplateString 是所有布局共用的 HTML 模板。
// 布局差异（配色、侧栏、照片、衬线）全部由 Layout 字段驱动，
// 真实数据与示例数据走同一条渲染路径。
const resumeTemplateString = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
    @page { size: A4; margin: 14mm; }
    * { box-sizing: border-box; }
    body {
        margin: 0;
        font-family: {{safeCSS .Layout.Palette.Font}};
        color: {{safeCSS .Layout.Palette.Text}};
        background: {{safeCSS .Layout.Palette.Bg}};
        font-size: 10.5pt;
        line-height: 1.45;
    }
    .page { max-width: 794px; margin: 0 auto; padding: 28px 34px; }
    header.head { border-bottom: 3px solid {{safeCSS .Layout.Palette.Accent}}; padding-bottom: 14px; margin-bottom: 18px; }
    .head-row { display: flex; align-items: center; gap: 20px; }
    .photo { width: 92px; height: 92px; border-radius: 50%; object-fit: cover; border: 2px solid {{safeCSS .Layout.Palette.Accent}}; }
    h1.name {
        margin: 0;
        color: {{safeCSS .Layout.Palette.Primary}};
        font-size: 23pt;
        {{if .Layout.Serif}}font-weight: 600; letter-spacing: 0.5px;{{else}}font-weight: 700;{{end}}
    }
    .contact { color: {{safeCSS .Layout.Palette.Secondary}}; font-size: 9pt; margin-top: 4px; }
    .contact span + span::before { content: " \00b7 "; }
    .summary { margin: 6px 0 0; }
    h2.section {
        color: {{safeCSS .Layout.Palette.Primary}};
        border-bottom: 1px solid {{safeCSS .Layout.Palette.Secondary}};
        font-size: 12pt;
        text-transform: uppercase;
        letter-spacing: 1px;
        margin: 18px 0 8px;
        padding-bottom: 2px;
    }
    .entry { margin-bottom: 10px; page-break-inside: avoid; }
    .entry-head { display: flex; justify-content: space-between; }
    .entry-title { font-weight: 700; }
    .entry-where { color: {{safeCSS .Layout.Palette.Secondary}}; }
    .entry-dates { color: {{safeCSS .Layout.Palette.Secondary}}; font-size: 9pt; white-space: nowrap; }
    .entry-desc { margin: 3px 0 0; }
    .skill-list { display: flex; flex-wrap: wrap; gap: 6px; padding: 0; margin: 0; list-style: none; }
    .skill {
        border: 1px solid {{safeCSS .Layout.Palette.Accent}};
        color: {{safeCSS .Layout.Palette.Primary}};
        border-radius: 3px;
        padding: 2px 8px;
        font-size: 9pt;
    }
    .skill .level { color: {{safeCSS .Layout.Palette.Secondary}}; }
    .links a { color: {{safeCSS .Layout.Palette.Accent}}; text-decoration: none; margin-right: 10px; font-size: 9pt; }
    {{if .Layout.Sidebar}}
    .columns { display: flex; gap: 24px; }
    .rail { width: 32%; background: rgba(0,0,0,0.035); padding: 12px; border-top: 3px solid {{safeCSS .Layout.Palette.Accent}}; }
    .main { width: 68%; }
    {{end}}
</style>
</head>
<body>
<div class="page">
    <header class="head">
        <div class="head-row">
            {{if and .Layout.ShowPhoto .Info}}{{if .Info.PhotoURL}}<img class="photo" src="{{.Info.PhotoURL}}" alt="photo">{{end}}{{end}}
            <div>
                <h1 class="name">{{if .FullName}}{{.FullName}}{{else}}{{.Resume.Title}}{{end}}</h1>
                {{with .Info}}
                <div class="contact">
                    {{if .Email}}<span>{{.Email}}</span>{{end}}
                    {{if .Phone}}<span>{{.Phone}}</span>{{end}}
                    {{if .City}}<span>{{.City}}{{if .State}}, {{.State}}{{end}}{{if .Country}}, {{.Country}}{{end}}</span>{{end}}
                </div>
                <div class="links">
                    {{if .LinkedIn}}<a href="{{.LinkedIn}}">{{.LinkedIn}}</a>{{end}}
                    {{if .Website}}<a href="{{.Website}}">{{.Website}}</a>{{end}}
                </div>
                {{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
                {{end}}
            </div>
        </div>
    </header>

    {{if .Layout.Sidebar}}<div class="columns"><aside class="rail">{{template "skills" .}}{{template "education" .}}</aside><div class="main">{{template "experience" .}}{{template "projects" .}}</div></div>
    {{else}}{{template "experience" .}}{{template "education" .}}{{template "skills" .}}{{template "projects" .}}{{end}}
</div>
</body>
</html>

{{define "experience"}}{{if .Experiences}}
    <h2 class="section">Experience</h2>
    {{range .Experiences}}
    <div class="entry">
        <div class="entry-head">
            <div><span class="entry-title">{{.Position}}</span> <span class="entry-where">&mdash; {{.Company}}{{if .Location}}, {{.Location}}{{end}}</span></div>
            <div class="entry-dates">{{dateRange .StartDate .EndDate .Current}}</div>
        </div>
        {{if .Description}}<p class="entry-desc">{{.Description}}</p>{{end}}
    </div>
    {{end}}
{{end}}{{end}}

{{define "education"}}{{if .Education}}
    <h2 class="section">Education</h2>
    {{range .Education}}
    <div class="entry">
        <div class="entry-head">
            <div><span class="entry-title">{{.Degree}}</span> <span class="entry-where">&mdash; {{.Institution}}{{if .Location}}, {{.Location}}{{end}}</span></div>
            <div class="entry-dates">{{dateRange .StartDate .EndDate .Current}}</div>
        </div>
        {{if .FieldOfStudy}}<div class="entry-where">{{.FieldOfStudy}}{{if .GPA}} &middot; GPA {{printf "%.2f" (deref .GPA)}}{{end}}</div>{{else if .GPA}}<div class="entry-where">GPA {{printf "%.2f" (deref .GPA)}}</div>{{end}}
        {{if .Description}}<p class="entry-desc">{{.Description}}</p>{{end}}
    </div>
    {{end}}
{{end}}{{end}}

{{define "skills"}}{{if .Skills}}
    <h2 class="section">Skills</h2>
    <ul class="skill-list">
        {{range .Skills}}<li class="skill">{{.Name}} <span class="level">({{levelName .Level}})</span></li>{{end}}
    </ul>
{{end}}{{end}}

{{define "projects"}}{{if .Projects}}
    <h2 class="section">Projects</h2>
    {{range .Projects}}
    <div class="entry">
        <div class="entry-head">
            <div><span class="entry-title">{{.Title}}</span>{{if .Technologies}} <span class="entry-where">&mdash; {{.Technologies}}</span>{{end}}</div>
            {{if .StartDate}}<div class="entry-dates">{{dateRangeOpt .StartDate .EndDate}}</div>{{end}}
        </div>
        {{if .Description}}<p class="entry-desc">{{.Description}}</p>{{end}}
        <div class="links">
            {{if .URL}}<a href="{{.URL}}">{{.URL}}</a>{{end}}
            {{if .GithubURL}}<a href="{{.GithubURL}}">{{.GithubURL}}</a>{{end}}
        </div>
    </div>
    {{end}}
{{end}}{{end}}
`
