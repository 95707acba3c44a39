// Package imageset edits the ordered image list of a product. A Set mixes
// images that are already stored (a URL) with files staged for upload, and
// Commit turns it into the final URL list where index 0 is the primary image.
package imageset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxFileSize is the largest accepted image, 10 MiB
const MaxFileSize = 10 << 20

// workers bounds concurrent preview and upload work
const workers = 4

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds 10 MiB")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyURL        = errors.New("uploader returned no url")
)

// File is a staged local file
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Uploader stores a file and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Item is one entry of the set. Exactly one of URL and File is set.
type Item struct {
	ID      string
	URL     string
	File    File
	Preview string
}

// Pending reports whether the item still has to be uploaded
func (it Item) Pending() bool { return it.File != nil }

// Rejection explains why a file was not added
type Rejection struct {
	File string
	Err  error
}

func (r Rejection) Error() string { return fmt.Sprintf("%s: %v", r.File, r.Err) }

// Failure is an item that could not be uploaded during Commit
type Failure struct {
	ItemID string
	File   string
	Err    error
}

// Result is the outcome of Commit
type Result struct {
	URLs     []string
	Primary  *string
	Failures []Failure
}

// Set is an ordered image list. Operations return an updated copy.
type Set struct {
	items []Item
}

// FromURLs starts a set from already stored images, keeping their order
func FromURLs(urls []string) Set {
	items := make([]Item, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		items = append(items, Item{ID: uuid.NewString(), URL: u, Preview: u})
	}
	return Set{items: items}
}

// Items returns the items in order
func (s Set) Items() []Item { return slices.Clone(s.items) }

// Len returns the number of items
func (s Set) Len() int { return len(s.items) }

// IndexOfURL returns the position of a stored image, -1 when absent
func (s Set) IndexOfURL(u string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.URL == u })
}

// Validate checks a file against the type allow-list and the size cap
func Validate(f File) error {
	if !allowedTypes[f.ContentType()] {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, f.ContentType())
	}
	if f.Size() > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// AddFiles validates files and appends the accepted ones in their original
// order. Previews are rendered concurrently into pre-assigned slots, so the
// resulting order never depends on which preview finishes first. Invalid or
// unreadable files are reported individually and do not stop the batch.
func (s Set) AddFiles(ctx context.Context, files []File) (Set, []Rejection) {
	var rejected []Rejection

	accepted := make([]Item, 0, len(files))
	for _, f := range files {
		if err := Validate(f); err != nil {
			rejected = append(rejected, Rejection{File: f.Name(), Err: err})
			continue
		}
		accepted = append(accepted, Item{ID: uuid.NewString(), File: f})
	}

	previewErrs := make([]error, len(accepted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range accepted {
		g.Go(func() error {
			preview, err := renderPreview(gctx, accepted[i].File)
			if err != nil {
				previewErrs[i] = err
				return nil
			}
			accepted[i].Preview = preview
			return nil
		})
	}
	_ = g.Wait()

	next := Set{items: slices.Clone(s.items)}
	for i, it := range accepted {
		if previewErrs[i] != nil {
			rejected = append(rejected, Rejection{File: it.File.Name(), Err: previewErrs[i]})
			continue
		}
		next.items = append(next.items, it)
	}
	return next, rejected
}

// Remove drops the item with the given id. Removing the primary image makes
// the next one primary.
func (s Set) Remove(id string) Set {
	i := slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return s
	}
	return Set{items: slices.Delete(slices.Clone(s.items), i, i+1)}
}

// Move takes the item at from and reinserts it at to
func (s Set) Move(from, to int) (Set, error) {
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		return s, ErrIndexOutOfRange
	}
	if from == to {
		return s, nil
	}

	items := slices.Clone(s.items)
	moved := items[from]
	items = slices.Delete(items, from, from+1)
	items = slices.Insert(items, to, moved)
	return Set{items: items}, nil
}

// Commit uploads every pending file and returns the final URL list in set
// order. Stored images pass through unchanged. A failed upload is reported
// and its item left out; the other images are still returned.
func (s Set) Commit(ctx context.Context, up Uploader) Result {
	urls := make([]string, len(s.items))
	errs := make([]error, len(s.items))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, it := range s.items {
		if !it.Pending() {
			urls[i] = it.URL
			continue
		}
		g.Go(func() error {
			urls[i], errs[i] = up.Upload(ctx, it.File)
			if errs[i] == nil && urls[i] == "" {
				errs[i] = ErrEmptyURL
			}
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	res.URLs = make([]string, 0, len(s.items))
	for i, it := range s.items {
		if errs[i] != nil {
			res.Failures = append(res.Failures, Failure{ItemID: it.ID, File: it.File.Name(), Err: errs[i]})
			continue
		}
		res.URLs = append(res.URLs, urls[i])
	}
	if len(res.URLs) > 0 {
		primary := res.URLs[0]
		res.Primary = &primary
	}
	return res
}
