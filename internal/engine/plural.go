package engine

// PluralRu выбирает форму существительного для числительного:
// 1 урок, 2 урока, 5 уроков, и особый случай 11-19 ("11 уроков").
func PluralRu(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	if n%100 >= 11 && n%100 <= 19 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}
