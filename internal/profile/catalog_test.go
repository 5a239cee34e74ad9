package profile_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilesave/internal/fs"
	"profilesave/internal/profile"
	"profilesave/internal/testutil"
)

func TestDescribe(t *testing.T) {
	u := testutil.NewTestUser(t, "alice")
	docs := filepath.Join(u.ProfileRoot(), "Documents")

	t.Run("with documents folder", func(t *testing.T) {
		c := profile.Describe(u, docs)
		assert.Equal(t, profile.AllKeys(), c.Keys())

		stencils, ok := c.Get(profile.Stencils)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(docs, "My Shapes"), stencils.SourcePath)
		assert.Equal(t, profile.KindDirectory, stencils.Kind)

		ribbon, _ := c.Get(profile.Ribbon)
		assert.Equal(t, filepath.Join(u.ProfileRoot(), "AppData", "Local", "Microsoft", "Office"), ribbon.SourcePath)
		assert.Equal(t, "*.officeUI", ribbon.MatchPattern)
		assert.Equal(t, profile.KindFile, ribbon.Kind)

		for _, d := range c.Items() {
			assert.False(t, d.Detected, "%s detected without a detection pass", d.Key)
			assert.True(t, filepath.IsAbs(d.SourcePath), "%s source path not absolute", d.Key)
		}
	})

	t.Run("without documents folder", func(t *testing.T) {
		c := profile.Describe(u, "")
		_, ok := c.Get(profile.Stencils)
		assert.False(t, ok)
		assert.Equal(t, len(profile.AllKeys())-1, c.Len())
	})
}

func TestBuildCatalog_detection(t *testing.T) {
	u := testutil.NewTestUser(t, "bob")
	root := u.ProfileRoot()
	docs := filepath.Join(root, "Documents")

	testutil.WriteFiles(t, root, map[string]string{
		"AppData/Local/Microsoft/Office/Word.officeUI":           "<ribbon/>",
		"AppData/Roaming/Microsoft/Templates/sub/Normal.dotm":    "template",
		"AppData/Roaming/Microsoft/UProof/notes.txt":             "not a dictionary",
		"AppData/Roaming/Microsoft/Outlook/VbaProject.OTM":       "macros",
		"AppData/Local/Microsoft/Outlook/RoamCache/Stream_x.dat": "other stream",
		"Documents/My Shapes/Shapes.vssx":                        "stencil",
	})

	c, err := profile.BuildCatalog(u, testutil.StaticDocuments{Dir: docs}, fs.NewOSFilesystemManager(nil))
	require.NoError(t, err)

	assert.Equal(t, []profile.ItemKey{
		profile.Ribbon,
		profile.Templates,
		profile.Macros,
		profile.Stencils,
	}, c.Detected())
	assert.Equal(t, profile.AllKeys(), c.Keys())
}

func TestBuildCatalog_noDocuments(t *testing.T) {
	u := testutil.NewTestUser(t, "carol")

	c, err := profile.BuildCatalog(u, testutil.StaticDocuments{}, fs.NewOSFilesystemManager(nil))
	require.NoError(t, err)

	_, ok := c.Get(profile.Stencils)
	assert.False(t, ok)
	for _, k := range profile.AllKeys() {
		if k == profile.Stencils {
			continue
		}
		_, ok := c.Get(k)
		assert.True(t, ok, "missing %s", k)
	}
	assert.Empty(t, c.Detected())
}

func TestBuildCatalog_zeroUser(t *testing.T) {
	_, err := profile.BuildCatalog(profile.ActiveUser{}, testutil.StaticDocuments{}, fs.NewOSFilesystemManager(nil))
	assert.ErrorIs(t, err, profile.ErrUserResolution)
}

// unreadableFS fails Match for one directory.
type unreadableFS struct {
	profile.FilesystemManager
	dir string
}

func (f unreadableFS) Match(dir, pattern string, recursive bool) ([]string, error) {
	if dir == f.dir {
		return nil, errors.New("permission denied")
	}
	return f.FilesystemManager.Match(dir, pattern, recursive)
}

func TestBuildCatalog_unreadableItemDoesNotFailOthers(t *testing.T) {
	u := testutil.NewTestUser(t, "dave")
	root := u.ProfileRoot()
	testutil.WriteFiles(t, root, map[string]string{
		"AppData/Roaming/Microsoft/Templates/Normal.dotm":  "template",
		"AppData/Roaming/Microsoft/Signatures/Work.htm":    "<p>Dave</p>",
		"AppData/Roaming/Microsoft/Outlook/VbaProject.OTM": "macros",
	})
	templates := filepath.Join(root, "AppData", "Roaming", "Microsoft", "Templates")
	fsmgr := unreadableFS{FilesystemManager: fs.NewOSFilesystemManager(nil), dir: templates}

	c, err := profile.BuildCatalog(u, testutil.StaticDocuments{}, fsmgr)
	require.NoError(t, err)

	assert.Equal(t, []profile.ItemKey{profile.Signatures, profile.Macros}, c.Detected())
	d, ok := c.Get(profile.Templates)
	require.True(t, ok)
	assert.False(t, d.Detected)
	assert.EqualError(t, d.DetectErr, "permission denied")

	logger := testutil.NewRecordingLogger()
	report, err := profile.NewEngine(fsmgr, logger).Backup(c, t.TempDir(), []profile.ItemKey{profile.Templates, profile.Signatures})
	require.NoError(t, err)
	assert.Equal(t, []profile.ItemKey{profile.Signatures}, report.Keys(profile.OutcomeCopied))
	assert.Equal(t, []profile.ItemKey{profile.Templates}, report.Keys(profile.OutcomeSkipped))
	assert.Contains(t, report.Items[0].Reason, "permission denied")
}
