package pulsar

import (
	"bytes"
	"errors"
	"testing"

	pulsarlog "github.com/apache/pulsar-client-go/pulsar/log"
	"github.com/stretchr/testify/assert"

	"github.com/klwxsrx/deskbooking/pkg/log"
)

func TestLoggerAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	adapter := newLoggerAdapter(log.NewWithWriter(log.LevelInfo, buf))

	adapter.SubLogger(pulsarlog.Fields{"topic": "user-notification"}).
		WithError(errors.New("connection reset")).
		Warnf("reconnecting in %d seconds", 5)
	adapter.Debug("skipped")

	assert.Contains(t, buf.String(), `"msg":"reconnecting in 5 seconds"`)
	assert.Contains(t, buf.String(), `"topic":"user-notification"`)
	assert.Contains(t, buf.String(), `"error":"connection reset"`)
	assert.NotContains(t, buf.String(), "skipped")
}
