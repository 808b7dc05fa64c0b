package models

import "github.com/AlekseyZapadovnikov/issue-badge/internal/domain"

// Geometry задаёт пиксельные размеры сегментов бейджа. Пересчитывается
// на каждый запрос и не кэшируется.
type Geometry struct {
	BadgeHeight int
	IconSize    int
	LabelWidth  int
	// NumberWidth и StateWidth вычисляются по числу и подписи состояния.
	NumberWidth int
	StateWidth  int
	TotalWidth  int
}

// Badge — готовые данные для SVG-рендера: номер, состояние с цветом,
// метки и опциональные inline-аватары.
type Badge struct {
	Number     int
	State      domain.IssueState
	StateColor string
	Labels     []domain.Label

	// AssigneeAvatar и AuthorAvatar — data-URI аватаров; пустая строка,
	// если аватар недоступен.
	AssigneeAvatar string
	AuthorAvatar   string

	Geometry Geometry
}
