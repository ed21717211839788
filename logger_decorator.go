package modgraph

// BaseLoggerDecorator forwards every call to the wrapped logger.
type BaseLoggerDecorator struct {
	inner Logger
}

// NewBaseLoggerDecorator creates a new base decorator wrapping the given logger.
func NewBaseLoggerDecorator(inner Logger) *BaseLoggerDecorator {
	return &BaseLoggerDecorator{inner: inner}
}

// GetInnerLogger returns the wrapped logger
func (d *BaseLoggerDecorator) GetInnerLogger() Logger {
	return d.inner
}

func (d *BaseLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, args...)
}

func (d *BaseLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, args...)
}

func (d *BaseLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, args...)
}

func (d *BaseLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, args...)
}

// DualWriterLoggerDecorator logs to a primary and a secondary logger.
type DualWriterLoggerDecorator struct {
	*BaseLoggerDecorator
	secondary Logger
}

// NewDualWriterLoggerDecorator creates a decorator that logs to both primary and secondary loggers.
func NewDualWriterLoggerDecorator(primary, secondary Logger) *DualWriterLoggerDecorator {
	return &DualWriterLoggerDecorator{
		BaseLoggerDecorator: NewBaseLoggerDecorator(primary),
		secondary:           secondary,
	}
}

func (d *DualWriterLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, args...)
	d.secondary.Info(msg, args...)
}

func (d *DualWriterLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, args...)
	d.secondary.Error(msg, args...)
}

func (d *DualWriterLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, args...)
	d.secondary.Warn(msg, args...)
}

func (d *DualWriterLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, args...)
	d.secondary.Debug(msg, args...)
}

// ValueInjectionLoggerDecorator prepends fixed key-value pairs to every log
// call. Containers use it to tag records with their module name.
type ValueInjectionLoggerDecorator struct {
	*BaseLoggerDecorator
	injectedArgs []any
}

// NewValueInjectionLoggerDecorator creates a decorator that automatically injects values into log events.
func NewValueInjectionLoggerDecorator(inner Logger, injectedArgs ...any) *ValueInjectionLoggerDecorator {
	return &ValueInjectionLoggerDecorator{
		BaseLoggerDecorator: NewBaseLoggerDecorator(inner),
		injectedArgs:        injectedArgs,
	}
}

func (d *ValueInjectionLoggerDecorator) combineArgs(originalArgs []any) []any {
	if len(d.injectedArgs) == 0 {
		return originalArgs
	}
	if len(originalArgs) == 0 {
		return d.injectedArgs
	}
	combined := make([]any, 0, len(d.injectedArgs)+len(originalArgs))
	combined = append(combined, d.injectedArgs...)
	combined = append(combined, originalArgs...)
	return combined
}

func (d *ValueInjectionLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, d.combineArgs(args)...)
}
