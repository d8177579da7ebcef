package credentials_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/credentials"
	"go.trai.ch/depot/internal/core/domain"
)

const credPath = "/home/ops/.config/depot/credentials.json"

func TestStore_SaveLoadClear(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := credentials.NewStore(fsys, credPath)

	require.NoError(t, store.Load())
	assert.Empty(t, store.Token(), "missing file means no session")

	require.NoError(t, store.Save("tok-1"))
	assert.Equal(t, "tok-1", store.Token())

	info, err := fsys.Stat(credPath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	other := credentials.NewStore(fsys, credPath)
	require.NoError(t, other.Load())
	assert.Equal(t, "tok-1", other.Token())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	exists, err := afero.Exists(fsys, credPath)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestStore_CorruptFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, credPath, []byte("{not json"), domain.PrivateFilePerm))

	store := credentials.NewStore(fsys, credPath)
	err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCredentialReadFailed)
	assert.Empty(t, store.Token())
}

func TestStore_ReadOnlyFs(t *testing.T) {
	store := credentials.NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), credPath)

	err := store.Save("tok")
	require.Error(t, err)
	assert.Empty(t, store.Token())
}
