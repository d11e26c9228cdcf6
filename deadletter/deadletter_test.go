package deadletter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecordAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deadletter.db")

	log, err := Open(path)
	require.NoError(t, err)

	for i := int64(1); i <= 3; i++ {
		seq, err := log.Record(Entry{PostID: i, Fields: map[string]any{"title_bn": "শিরোনাম"}, Reason: "boom"})
		require.NoError(t, err)
		assert.Equal(t, uint64(i), seq)
	}

	entries, err := log.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].PostID, "newest first")
	assert.Equal(t, int64(2), entries[1].PostID)
	assert.Equal(t, "শিরোনাম", entries[0].Fields["title_bn"])
	assert.False(t, entries[0].FailedAt.IsZero())

	n, err := log.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, log.Close())

	// entries survive a reopen
	log, err = Open(path)
	require.NoError(t, err)
	defer log.Close()

	all, err := log.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
