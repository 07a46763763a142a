package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	plain := idgen.NewUUID("").Generate()
	_, err := uuid.Parse(plain)
	require.NoError(t, err)

	prefixed := idgen.NewUUID("req").Generate()
	require.True(t, strings.HasPrefix(prefixed, "req_"))
	_, err = uuid.Parse(strings.TrimPrefix(prefixed, "req_"))
	require.NoError(t, err)

	assert.NotEqual(t, plain, idgen.NewUUID("").Generate())
}

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("req")
	assert.Equal(t, "req_1", g.Generate())
	assert.Equal(t, "req_2", g.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
