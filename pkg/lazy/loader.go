package lazy

import (
	"fmt"
	"sync"
)

type Loader[T any] interface {
	MustLoad() T
	Load() (T, error)
	IfLoaded(func(T))
}

type loader[T any] struct {
	provider func() (T, error)
	once     sync.Once
	mu       sync.RWMutex
	isLoaded bool
	value    T
	err      error
}

func New[T any](provider func() (T, error)) Loader[T] {
	return &loader[T]{provider: provider}
}

// Value wraps an already constructed value.
func Value[T any](value T) Loader[T] {
	l := &loader[T]{isLoaded: true, value: value}
	l.once.Do(func() {})
	return l
}

func (l *loader[T]) MustLoad() T {
	value, err := l.Load()
	if err != nil {
		panic(err)
	}

	return value
}

func (l *loader[T]) Load() (T, error) {
	l.once.Do(func() {
		value, err := l.provider()

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.err = fmt.Errorf("load value of %T: %w", l.value, err)
			return
		}

		l.isLoaded = true
		l.value = value
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.err
}

func (l *loader[T]) IfLoaded(f func(T)) {
	l.mu.RLock()
	loaded, value := l.isLoaded, l.value
	l.mu.RUnlock()

	if loaded {
		f(value)
	}
}
