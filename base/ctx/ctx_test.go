package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_WithValue(t *testing.T) {
	req := require.New(t)
	c := WithValue(Background(), "requestID", "abc-123")
	req.Equal("abc-123", c.Value("requestID"))
}

func Test_WithTimeout(t *testing.T) {
	req := require.New(t)
	c, cancel := WithTimeout(Background(), time.Millisecond)
	defer cancel()
	<-c.Done()
	req.Error(c.Err())
}

func Test_WithCancel(t *testing.T) {
	req := require.New(t)
	c, cancel := WithCancel(Background())
	cancel()
	req.Error(c.Err())
}
