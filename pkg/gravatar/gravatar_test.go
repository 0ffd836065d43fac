package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_URL_NormalizesEmail(t *testing.T) {
	a := URL("Alice@Example.com ")
	b := URL("alice@example.com")

	assert.Equal(t, a, b)
	assert.Contains(t, a, "https://gravatar.com/avatar/")
	assert.Contains(t, a, "d=mm")
}

func Test_URL_DistinctEmailsDiffer(t *testing.T) {
	assert.NotEqual(t, URL("alice@example.com"), URL("bob@example.com"))
}
