package domain

// CriterionScore — оценка одного критерия здоровья стартапа.
type CriterionScore struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

// Scorecard — взвешенная оценка проекта 0-100 по 10 критериям.
type Scorecard struct {
	Criteria []CriterionScore `json:"criteria"`
	Total    int              `json:"total"`
}
