package gimgen

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// PanicError is the fault a [Coroutine] fails with when its [Procedure]
// panics. It carries the recovered value and the stack trace at the time of
// the panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("gimgen: procedure panicked: %v", p.Value)
}

// ErrorWithStack is like Error but also includes the stack trace.
func (p *PanicError) ErrorWithStack() string {
	var b strings.Builder
	b.WriteString(p.Error())
	if p.Stack != nil {
		b.WriteString("\n\n")
		b.Write(p.Stack)
	}
	return b.String()
}

func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// try calls f, turning a panic into a *PanicError.
// A panic with a *PanicError value is passed through unchanged so that
// nested drivers do not wrap the same panic twice.
func try(f func()) (err error) {
	ok := false
	defer func() {
		if ok {
			return
		}
		v := recover()
		if v == nil {
			panic("gimgen: gimgen does not support runtime.Goexit()")
		}
		if pe, isPanicError := v.(*PanicError); isPanicError {
			err = pe
			return
		}
		err = &PanicError{Value: v, Stack: debug.Stack()}
	}()
	f()
	ok = true
	return nil
}
