package profile

import (
	"fmt"
	"path/filepath"
)

// DocumentsLocator finds a user's documents folder.
type DocumentsLocator interface {
	// DocumentsDir returns the absolute documents folder for u, or ok=false
	// when none can be determined.
	DocumentsDir(u ActiveUser) (dir string, ok bool)
}

// Catalog maps each item key to its descriptor for one user.
type Catalog struct {
	items map[ItemKey]ItemDescriptor
}

// Get returns the descriptor for key.
func (c Catalog) Get(key ItemKey) (ItemDescriptor, bool) {
	d, ok := c.items[key]
	return d, ok
}

// Len returns the number of items in the catalog.
func (c Catalog) Len() int { return len(c.items) }

// Keys returns the catalog's keys in canonical order.
func (c Catalog) Keys() []ItemKey {
	keys := make([]ItemKey, 0, len(c.items))
	for _, k := range AllKeys() {
		if _, ok := c.items[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Items returns the catalog's descriptors in canonical order.
func (c Catalog) Items() []ItemDescriptor {
	out := make([]ItemDescriptor, 0, len(c.items))
	for _, k := range c.Keys() {
		out = append(out, c.items[k])
	}
	return out
}

// Detected returns the keys of items whose source location holds at least one file.
func (c Catalog) Detected() []ItemKey {
	var keys []ItemKey
	for _, d := range c.Items() {
		if d.Detected {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

type itemSpec struct {
	key         ItemKey
	displayName string
	relPath     []string
	pattern     string
	kind        Kind
}

// profileItems lists the items that live under the profile root.
var profileItems = []itemSpec{
	{Ribbon, "Ribbon and Quick Access Toolbar customizations", []string{"AppData", "Local", "Microsoft", "Office"}, "*.officeUI", KindFile},
	{Templates, "Office templates", []string{"AppData", "Roaming", "Microsoft", "Templates"}, "*", KindDirectory},
	{Signatures, "Outlook signatures", []string{"AppData", "Roaming", "Microsoft", "Signatures"}, "*", KindDirectory},
	{Dictionaries, "Custom dictionaries", []string{"AppData", "Roaming", "Microsoft", "UProof"}, "*.dic", KindFile},
	{AutoComplete, "Outlook autocomplete cache", []string{"AppData", "Local", "Microsoft", "Outlook", "RoamCache"}, "Stream_Autocomplete*.dat", KindFile},
	{Macros, "Outlook VBA macros", []string{"AppData", "Roaming", "Microsoft", "Outlook"}, "VbaProject.OTM", KindFile},
	{AutoCorrect, "AutoCorrect lists", []string{"AppData", "Roaming", "Microsoft", "Office"}, "*.acl", KindFile},
	{AddIns, "Office add-ins", []string{"AppData", "Roaming", "Microsoft", "AddIns"}, "*", KindDirectory},
}

// stencilsSpec lives under the documents folder rather than the profile root.
var stencilsSpec = itemSpec{Stencils, "Visio stencils", []string{"My Shapes"}, "*", KindDirectory}

// Describe builds the catalog for u without touching the filesystem.
// Stencils is included only when documentsDir is non-empty. Detected is
// false for every item.
func Describe(u ActiveUser, documentsDir string) Catalog {
	items := make(map[ItemKey]ItemDescriptor, len(profileItems)+1)
	for _, s := range profileItems {
		items[s.key] = s.describe(u.ProfileRoot())
	}
	if documentsDir != "" {
		items[Stencils] = stencilsSpec.describe(documentsDir)
	}
	return Catalog{items: items}
}

func (s itemSpec) describe(base string) ItemDescriptor {
	return ItemDescriptor{
		Key:          s.key,
		DisplayName:  s.displayName,
		SourcePath:   filepath.Join(append([]string{base}, s.relPath...)...),
		MatchPattern: s.pattern,
		Kind:         s.kind,
	}
}

// Detect returns a copy of c with Detected set on every item whose source
// path holds at least one matching file. An item whose source cannot be read
// is left undetected with DetectErr set; other items are unaffected.
func Detect(c Catalog, fsmgr FilesystemManager) Catalog {
	items := make(map[ItemKey]ItemDescriptor, len(c.items))
	for k, d := range c.items {
		matches, err := fsmgr.Match(d.SourcePath, d.MatchPattern, d.Recursive())
		d.Detected = err == nil && len(matches) > 0
		d.DetectErr = err
		items[k] = d
	}
	return Catalog{items: items}
}

// BuildCatalog looks up the documents folder for u, describes every item and
// runs a detection pass. A failed documents lookup only drops Stencils.
func BuildCatalog(u ActiveUser, locator DocumentsLocator, fsmgr FilesystemManager) (Catalog, error) {
	if u.IsZero() {
		return Catalog{}, fmt.Errorf("%w: no active user", ErrUserResolution)
	}

	docs, ok := locator.DocumentsDir(u)
	if !ok {
		docs = ""
	}

	return Detect(Describe(u, docs), fsmgr), nil
}
