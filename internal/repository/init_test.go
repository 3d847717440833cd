package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/nexus/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_Layout(t *testing.T) {
	root := filepath.Join(tempDir(t), "r1")

	r, err := Create(root)
	require.NoError(t, err)
	assert.Equal(t, root, r.Worktree())
	assert.Equal(t, filepath.Join(root, MetadataDirName), r.MetadataDir())

	for _, dir := range []string{"branches", "objects", "refs/tags", "refs/heads"} {
		fi, err := os.Stat(filepath.Join(r.MetadataDir(), filepath.FromSlash(dir)))
		require.NoError(t, err, dir)
		assert.True(t, fi.IsDir(), dir)

		entries, err := os.ReadDir(filepath.Join(r.MetadataDir(), filepath.FromSlash(dir)))
		require.NoError(t, err)
		assert.Empty(t, entries, dir)
	}

	description, err := os.ReadFile(filepath.Join(r.MetadataDir(), DescriptionFile))
	require.NoError(t, err)
	assert.Equal(t, "Unnamed repository; edit this file 'description' to name the repository.\n", string(description))

	head, err := os.ReadFile(filepath.Join(r.MetadataDir(), HeadFile))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main\n", string(head))

	cfg, err := config.Load(filepath.Join(r.MetadataDir(), ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Sections(), cfg.Sections())

	assert.Equal(t, cfg.Sections(), r.Config().Sections())
}

func TestCreate_ThenLocate(t *testing.T) {
	root := tempDir(t)

	_, err := Create(root)
	require.NoError(t, err)

	r, err := Locate(root, true)
	require.NoError(t, err)

	v, ok := r.Config().Get("core", "repositoryformatversion")
	require.True(t, ok)
	assert.Equal(t, "0", v)

	v, _ = r.Config().Get("core", "bare")
	assert.Equal(t, "false", v)
}

func TestCreate_Twice(t *testing.T) {
	root := tempDir(t)

	_, err := Create(root)
	require.NoError(t, err)

	// mark the tree so an overwrite would show
	require.NoError(t, os.WriteFile(filepath.Join(root, MetadataDirName, DescriptionFile), []byte("mine\n"), 0o644))

	before := snapshot(t, root)

	r, err := Create(root)
	require.Error(t, err)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	assert.Equal(t, before, snapshot(t, root))
}

func TestCreate_PartialMetadataDir(t *testing.T) {
	root := tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, MetadataDirName, ObjectsDir), 0o755))

	_, err := Create(root)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	_, err = os.Stat(filepath.Join(root, MetadataDirName, HeadFile))
	assert.True(t, os.IsNotExist(err))
}

func TestCreate_EmptyMetadataDir(t *testing.T) {
	root := tempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, MetadataDirName), 0o755))

	_, err := Create(root)
	require.NoError(t, err)

	_, err = Open(root)
	require.NoError(t, err)
}

func TestCreate_ExistingWorktree(t *testing.T) {
	root := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("hello\n"), 0o644))

	_, err := Create(root)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "README"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestCreate_MissingAncestors(t *testing.T) {
	root := filepath.Join(tempDir(t), "a", "b", "c")

	r, err := Create(root)
	require.NoError(t, err)

	fi, err := os.Stat(r.MetadataDir())
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestCreate_WorktreeIsFile(t *testing.T) {
	file := filepath.Join(tempDir(t), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Create(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestCreate_MetadataDirIsFile(t *testing.T) {
	root := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, MetadataDirName), []byte("x"), 0o644))

	_, err := Create(root)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestCreate_RelativePath(t *testing.T) {
	dir := tempDir(t)
	t.Chdir(dir)

	r, err := Create("project")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(r.Worktree()))
	assert.Equal(t, filepath.Join(dir, "project"), r.Worktree())
}
