package usecase

import (
	"fmt"
	"sync"
)

// settle запускает задачи параллельно и ждёт все до единой, собирая
// ошибки по местам вместо fail-fast: упавшая секция дашборда не должна
// гасить остальные. Паника внутри задачи тоже превращается в ошибку.
func settle(tasks ...func() error) []error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func() error) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("panic: %v", r)
				}
			}()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()
	return errs
}
