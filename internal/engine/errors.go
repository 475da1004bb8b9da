package engine

import "errors"

var (
	// ErrFreezeNotNeeded — стрик не под угрозой, замораживать нечего.
	ErrFreezeNotNeeded = errors.New("streak is not at risk")

	// ErrFreezeAlreadyUsed — заморозка на этой неделе уже потрачена.
	ErrFreezeAlreadyUsed = errors.New("freeze already used this week")

	// ErrNoLevelDefinitions — конфигурация уровней пуста или невалидна.
	ErrNoLevelDefinitions = errors.New("no level definitions")
)
