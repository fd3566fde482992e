package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPublisher_IsNoop(t *testing.T) {
	var p *Publisher

	assert.NoError(t, p.PublishJSON(context.Background(), "booking.created", map[string]int{"id": 1}))
	assert.NoError(t, p.Close())
}
