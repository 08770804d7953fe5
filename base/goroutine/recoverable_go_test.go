package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RecoverableGo(t *testing.T) {
	req := require.New(t)

	done := make(chan struct{})
	ch := RecoverableGo(func() { close(done) })
	<-done
	_, ok := <-ch
	req.False(ok)
}

func Test_RecoverableGo_Panic(t *testing.T) {
	req := require.New(t)

	ch := RecoverableGo(func() { panic("boom") })
	ev := <-ch
	req.NotNil(ev)
	req.Equal("boom", ev.Panic)
	req.NotEmpty(ev.Stack)
}
