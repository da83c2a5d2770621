package utils

import "math/rand"

// SampleInt64 возвращает n различных элементов ids, выбранных равномерно
// без возвращения. Если n не меньше длины среза, возвращаются все элементы.
// Выбор не детерминирован; для воспроизводимых прогонов вызывающий код
// должен подставлять выборку явно, минуя эту функцию.
func SampleInt64(ids []int64, n int) []int64 {
	if n <= 0 || len(ids) == 0 {
		return nil
	}
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n >= len(shuffled) {
		return shuffled
	}
	return shuffled[:n]
}
