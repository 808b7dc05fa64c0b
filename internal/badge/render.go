package badge

import (
	"fmt"
	"html"
	"io"
	"text/template"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/models"
)

// Шаблоны SVG. text/template вместо html/template: html/template вырезает
// data:-URI в xlink:href, а экранируем мы только пользовательские строки.
var (
	badgeTmpl = template.Must(template.New("badge").Funcs(template.FuncMap{
		"esc": html.EscapeString,
	}).Parse(badgeSVG))

	messageTmpl = template.Must(template.New("message").Funcs(template.FuncMap{
		"esc": html.EscapeString,
	}).Parse(messageSVG))
)

const badgeSVG = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Geometry.TotalWidth}}" height="{{.Geometry.BadgeHeight}}">
  <rect width="{{.Geometry.TotalWidth}}" height="{{.Geometry.BadgeHeight}}" rx="3" fill="#555"/>
  {{- if .Avatar}}
  <image x="0" y="0" width="{{.Geometry.IconSize}}" height="{{.Geometry.IconSize}}" xlink:href="{{.Avatar}}"/>
  {{- else}}
  <circle cx="10" cy="10" r="6" fill="#fff"/>
  {{- end}}
  <text x="{{.NumberTextX}}" y="14" fill="#fff" text-anchor="middle" font-family="Verdana,sans-serif" font-size="11">#{{.Number}}</text>
  <rect x="{{.StateX}}" width="{{.Geometry.StateWidth}}" height="{{.Geometry.BadgeHeight}}" fill="#{{.StateColor}}"/>
  <text x="{{.StateTextX}}" y="14" fill="#fff" text-anchor="middle" font-family="Verdana,sans-serif" font-size="11">{{.State}}</text>
  {{- range $i, $l := .Labels}}
  <rect x="{{$.LabelX $i}}" width="{{$.Geometry.LabelWidth}}" height="{{$.Geometry.BadgeHeight}}" fill="#{{$l.Color}}"><title>{{esc $l.Name}}</title></rect>
  {{- end}}
  <rect width="{{.Geometry.TotalWidth}}" height="{{.Geometry.BadgeHeight}}" rx="3" fill="none" stroke="#d5d5d5"/>
</svg>
`

const messageSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="20">
  <rect width="{{.Width}}" height="20" rx="3" fill="#555"/>
  <text x="{{.TextX}}" y="14" fill="#fff" text-anchor="middle" font-family="Verdana,sans-serif" font-size="11">{{esc .Text}}</text>
</svg>
`

// badgeView дополняет модель бейджа координатами, нужными шаблону.
type badgeView struct {
	*models.Badge
}

// Avatar выбирает аватар для иконки: assignee в приоритете, затем автор.
func (v badgeView) Avatar() string {
	if v.AssigneeAvatar != "" {
		return v.AssigneeAvatar
	}
	return v.AuthorAvatar
}

func (v badgeView) NumberTextX() int {
	return v.Geometry.IconSize + v.Geometry.NumberWidth/2
}

func (v badgeView) StateX() int {
	return v.Geometry.IconSize + v.Geometry.NumberWidth
}

func (v badgeView) StateTextX() int {
	return v.StateX() + v.Geometry.StateWidth/2
}

func (v badgeView) LabelX(i int) int {
	return v.StateX() + v.Geometry.StateWidth + i*v.Geometry.LabelWidth
}

// WriteBadge рендерит SVG-бейдж issue в w.
func WriteBadge(w io.Writer, b *models.Badge) error {
	if err := badgeTmpl.Execute(w, badgeView{Badge: b}); err != nil {
		return fmt.Errorf("render badge: %w", err)
	}
	return nil
}

// messageView — данные шаблона message-бейджа.
type messageView struct {
	Text  string
	Width int
}

func (v messageView) TextX() int {
	return v.Width / 2
}

// WriteMessage рендерит короткий message-бейдж вида "404 Issue Not Found".
// Ширина оценивается той же линейной формулой, что и сегмент состояния.
func WriteMessage(w io.Writer, status int, text string) error {
	msg := fmt.Sprintf("%d %s", status, text)
	view := messageView{
		Text:  msg,
		Width: 10 + 7*len(msg),
	}
	if err := messageTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render message badge: %w", err)
	}
	return nil
}
