// source.go abstracts "somewhere lines can be read from" over both
// substrates.
//
// The local matcher needs read/list/stat primitives and nothing else.
// Giving it one Source interface means forced-local evaluation (capability
// gate false) can line-scan a mount-backed subtree through the substrate's
// read and list operations with the very same walk code that scans the
// host filesystem.

package grep

import (
	"context"
	"strings"

	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/vfs"
)

// Source exposes the three read-only primitives the local matcher walks
// with. Paths are always workspace paths; implementations translate.
type Source interface {
	ReadFile(ctx context.Context, path string) (string, error)
	ReadDir(ctx context.Context, path string) ([]vfs.Entry, error)
	Stat(ctx context.Context, path string) (vfs.Info, error)
}

// fsSource adapts the host filesystem capability to Source.
type fsSource struct {
	fs vfs.FS
}

func (s fsSource) ReadFile(_ context.Context, path string) (string, error) {
	return s.fs.ReadFile(path)
}

func (s fsSource) ReadDir(_ context.Context, path string) ([]vfs.Entry, error) {
	return s.fs.ReadDir(path)
}

func (s fsSource) Stat(_ context.Context, path string) (vfs.Info, error) {
	return s.fs.Stat(path)
}

// mountSource adapts one mount point's backend to Source using only the
// substrate's read and list operations. Stat is derived: a readable path
// is a file, a listable one with children is a directory.
type mountSource struct {
	point *mount.Point
}

func (s mountSource) rel(path string) string {
	if path == s.point.Prefix {
		return ""
	}
	rest, _ := strings.CutPrefix(path, s.point.Prefix+"/")
	return rest
}

func (s mountSource) ReadFile(ctx context.Context, path string) (string, error) {
	return s.point.Backend.Read(ctx, s.point.Native(s.rel(path)))
}

func (s mountSource) ReadDir(ctx context.Context, path string) ([]vfs.Entry, error) {
	entries, err := s.point.Backend.List(ctx, s.point.Native(s.rel(path)))
	if err != nil {
		return nil, err
	}
	out := make([]vfs.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, vfs.Entry{Name: e.Name, Dir: e.Dir})
	}
	return out, nil
}

func (s mountSource) Stat(ctx context.Context, path string) (vfs.Info, error) {
	native := s.point.Native(s.rel(path))
	if content, err := s.point.Backend.Read(ctx, native); err == nil {
		return vfs.Info{Dir: false, Size: int64(len(content))}, nil
	}
	entries, err := s.point.Backend.List(ctx, native)
	if err != nil {
		return vfs.Info{}, err
	}
	if len(entries) == 0 {
		return vfs.Info{}, vfs.ErrNotFound
	}
	return vfs.Info{Dir: true}, nil
}

// sourceFor picks the Source for a classified target.
func sourceFor(t Target, env Env) Source {
	if t.Kind == targetRemote {
		return mountSource{point: t.Mount}
	}
	return fsSource{fs: env.FS}
}
