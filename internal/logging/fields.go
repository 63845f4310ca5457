package logging

import (
	"time"

	"go.uber.org/zap"
)

func String(key, value string) Field { return zap.String(key, value) }

func Int(key string, value int) Field { return zap.Int(key, value) }

func Bool(key string, value bool) Field { return zap.Bool(key, value) }

func Duration(key string, value time.Duration) Field { return zap.Duration(key, value) }

func Err(err error) Field { return zap.Error(err) }

// Component tags entries with the subsystem that wrote them.
func Component(name string) Field { return zap.String("component", name) }
