package auditlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationTag(t *testing.T) {
	assert.Equal(t, "LOC_1", LocationTag(1))
	assert.Equal(t, "LOC_42", LocationTag(42))
}
