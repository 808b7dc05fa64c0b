package badge

import (
	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/models"
)

// Фиксированные размеры бейджа в пикселях.
const (
	BadgeHeight = 20
	IconSize    = BadgeHeight
	LabelWidth  = 8
)

// ComputeGeometry вычисляет ширины сегментов бейджа. Формулы — линейная
// оценка ширины текста; намеренно неточная, менять коэффициенты нельзя
// ради совместимости получаемых размеров.
func ComputeGeometry(number int, state domain.IssueState, labelCount int) models.Geometry {
	numberWidth := 15 + 9*digitCount(number)
	stateWidth := 10 + 7*len(string(state))

	return models.Geometry{
		BadgeHeight: BadgeHeight,
		IconSize:    IconSize,
		LabelWidth:  LabelWidth,
		NumberWidth: numberWidth,
		StateWidth:  stateWidth,
		TotalWidth:  numberWidth + stateWidth + IconSize + LabelWidth*labelCount,
	}
}

// digitCount возвращает количество десятичных цифр положительного числа.
func digitCount(n int) int {
	count := 1
	for n >= 10 {
		n /= 10
		count++
	}
	return count
}
