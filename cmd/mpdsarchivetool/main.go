// Command mpdsarchivetool packs and unpacks the indexed archive format
// used by the codec packages in this module, driven by a manifest that
// records each member's compression kind.
package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gamemasterplc/mpdsarchivetool/archive"
)

var verbose bool

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpdsarchivetool in [out]",
		Short: "Pack or unpack an indexed compressed archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			in := args[0]
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return run(in, out)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug-level progress")
	return cmd
}

// run dispatches extract vs. rebuild the same way the original tool does:
// a substring check on the input name, not a strict suffix check.
func run(in, out string) error {
	if strings.Contains(in, ".bin") {
		if out == "" {
			out = defaultOutputName(in, ".lst")
		}
		return extract(in, out)
	}
	if out == "" {
		out = defaultOutputName(in, ".bin")
	}
	return rebuild(in, out)
}

// defaultOutputName swaps everything after the input's last "." for ext.
func defaultOutputName(in, ext string) string {
	if dot := strings.LastIndex(in, "."); dot >= 0 {
		return in[:dot] + ext
	}
	return in + ext
}

func rebuild(listPath, outPath string) error {
	logrus.WithField("manifest", listPath).Info("reading manifest")
	f, err := os.Open(listPath)
	if err != nil {
		return errors.Wrap(err, "opening manifest")
	}
	defer f.Close()

	baseDir := filepath.Dir(listPath)
	m, err := archive.ParseManifest(f, baseDir)
	if err != nil {
		return errors.Wrap(err, "parsing manifest")
	}

	raw := make([][]byte, len(m.Entries))
	for i, e := range m.Entries {
		logrus.WithFields(logrus.Fields{"path": e.Path, "kind": e.Kind}).Debug("reading member")
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return errors.Wrapf(err, "reading member %d (%s)", i, e.Path)
		}
		raw[i] = data
	}

	logrus.WithField("members", len(raw)).Info("packing archive")
	out, err := archive.Pack(raw, m)
	if err != nil {
		return errors.Wrap(err, "packing archive")
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}
	logrus.WithField("path", outPath).Info("wrote archive")
	return nil
}

func extract(binPath, outPath string) error {
	logrus.WithField("archive", binPath).Info("reading archive")
	buf, err := os.ReadFile(binPath)
	if err != nil {
		return errors.Wrap(err, "reading archive")
	}

	ex, err := archive.Unpack(buf)
	if err != nil {
		return errors.Wrap(err, "unpacking archive")
	}
	logrus.WithFields(logrus.Fields{"members": len(ex.Members), "kind": ex.ArchiveKind}).Info("extracted archive")

	subdir := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	memberDir := filepath.Join(filepath.Dir(outPath), subdir)
	if err := os.MkdirAll(memberDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", memberDir)
	}

	m := &archive.Manifest{ArchiveKind: ex.ArchiveKind}
	for i, member := range ex.Members {
		name := strconv.Itoa(i) + ".bin"
		path := filepath.Join(memberDir, name)
		if err := os.WriteFile(path, member, 0o644); err != nil {
			return errors.Wrapf(err, "writing member %d", i)
		}
		m.Entries = append(m.Entries, archive.ManifestEntry{Kind: ex.MemberKinds[i], Path: path})
		logrus.WithFields(logrus.Fields{"path": path, "kind": ex.MemberKinds[i]}).Debug("wrote member")
	}

	mf, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", outPath)
	}
	defer mf.Close()
	if err := m.WriteTo(mf, filepath.Dir(outPath)); err != nil {
		return errors.Wrap(err, "writing manifest")
	}
	logrus.WithField("path", outPath).Info("wrote manifest")
	return nil
}
