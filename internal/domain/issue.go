package domain

// IssueState описывает каноническое состояние issue в бейдже.
type IssueState string

// Возможные значения IssueState. Значение совпадает с подписью на бейдже.
const (
	StateOpen   IssueState = "open"
	StateMerged IssueState = "merged"
	StateClosed IssueState = "closed"
)

// Сырые состояния issue, которые отдаёт GitHub API.
const (
	RawStateOpen   = "open"
	RawStateClosed = "closed"
)

// stateColors задаёт цвет сегмента состояния для каждого IssueState.
var stateColors = map[IssueState]string{
	StateOpen:   "6CC644",
	StateMerged: "6E5494",
	StateClosed: "BD2C00",
}

// Color возвращает hex-цвет сегмента состояния.
func (s IssueState) Color() string {
	return stateColors[s]
}

// Classify сводит сырое состояние, признак pull request и подтверждение слияния
// к одному каноническому состоянию. Merged возможен только для закрытого PR,
// слияние которого подтверждено отдельным запросом.
func Classify(rawState string, isPullRequest, mergedConfirmed bool) IssueState {
	if rawState == RawStateOpen {
		return StateOpen
	}
	if isPullRequest && mergedConfirmed {
		return StateMerged
	}
	return StateClosed
}

// Label описывает метку issue. Ядро использует только количество меток
// и передаёт имя с цветом в рендер без интерпретации.
type Label struct {
	Name  string
	Color string
}

// UserRef указывает на пользователя GitHub, привязанного к issue.
type UserRef struct {
	Handle    string
	AvatarURL string
}

// Issue — неизменяемый снимок issue, собранный из ответов GitHub на один запрос.
// Никогда не сохраняется; живёт до отправки ответа.
type Issue struct {
	Number          int
	RawState        string
	IsPullRequest   bool
	MergedConfirmed bool
	Labels          []Label
	Assignee        *UserRef
	Author          *UserRef

	// State — результат Classify, вычисляется один раз при получении issue.
	State IssueState
}

// RateLimit — снимок квоты GitHub API из последнего ответа, для логирования.
type RateLimit struct {
	Remaining int
	Limit     int
}
