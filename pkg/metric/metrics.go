package metric

import "time"

type (
	Metrics interface {
		With(Labels) Metrics
		WithLabel(name string, value string) Metrics
		Increment(key string)
		Count(key string, value int)
		Duration(key string, duration time.Duration)
	}

	Labels map[string]string
)
