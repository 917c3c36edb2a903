// Package domain contains the core model for the multitool lockfile.
package domain

import (
	"encoding/json"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// SchemaURL is the only lockfile schema this tool knows how to update.
const SchemaURL = "https://raw.githubusercontent.com/theoremlp/rules_multitool/main/lockfile.schema.json"

// DefaultLockfilePath is where the update command looks for the lockfile
// when no --lockfile flag is given.
const DefaultLockfilePath = "./multitool.lock.json"

// File permissions for lockfile writes.
const (
	FilePerm = 0o644
	DirPerm  = 0o755
)

// OS is an operating system supported by lockfile binaries.
type OS string

// Supported operating systems.
const (
	OSLinux   OS = "linux"
	OSMacOS   OS = "macos"
	OSWindows OS = "windows"
)

// Valid reports whether the OS is one of the supported values.
func (o OS) Valid() bool {
	switch o {
	case OSLinux, OSMacOS, OSWindows:
		return true
	default:
		return false
	}
}

// CPU is a processor architecture supported by lockfile binaries.
type CPU string

// Supported CPU architectures.
const (
	CPUArm64  CPU = "arm64"
	CPUX86_64 CPU = "x86_64"
)

// Valid reports whether the CPU is one of the supported values.
func (c CPU) Valid() bool {
	switch c {
	case CPUArm64, CPUX86_64:
		return true
	default:
		return false
	}
}

// ArchiveType is the format hint of an archive binary. It is optional in
// the lockfile; entries without one rely on the consumer's own detection.
type ArchiveType string

// Known archive formats.
const (
	ArchiveZip    ArchiveType = "zip"
	ArchiveTarGz  ArchiveType = "tar.gz"
	ArchiveTarXz  ArchiveType = "tar.xz"
	ArchiveTarZst ArchiveType = "tar.zst"
)

// Valid reports whether the archive type is empty or a known format.
func (a ArchiveType) Valid() bool {
	switch a {
	case "", ArchiveZip, ArchiveTarGz, ArchiveTarXz, ArchiveTarZst:
		return true
	default:
		return false
	}
}

// Kind discriminates the binary variants in the lockfile.
type Kind string

// Binary kinds.
const (
	KindFile    Kind = "file"
	KindArchive Kind = "archive"
	KindPkg     Kind = "pkg"
)

// Binary is one platform-specific downloadable artifact for a tool.
// The set of implementations is closed: File, Archive and Pkg.
type Binary interface {
	// Kind returns the variant discriminator serialized as the "kind" key.
	Kind() Kind

	// SourceURL returns the download URL the entry is pinned to.
	SourceURL() string

	// SortKey returns the "<os>_<cpu>" key binaries are ordered by
	// within a tool.
	SortKey() string

	// RequestHeaders returns the opaque headers sent with the download
	// request, or nil.
	RequestHeaders() map[string]string

	validate() error
}

// File is a binary that is downloaded and used as-is.
type File struct {
	URL          string            `json:"url"`
	SHA256       string            `json:"sha256"`
	OS           OS                `json:"os"`
	CPU          CPU               `json:"cpu"`
	Headers      map[string]string `json:"headers,omitempty"`
	AuthPatterns map[string]string `json:"auth_patterns,omitempty"`
}

// Archive is a binary extracted from a downloaded archive.
type Archive struct {
	URL          string            `json:"url"`
	File         string            `json:"file"`
	SHA256       string            `json:"sha256"`
	OS           OS                `json:"os"`
	CPU          CPU               `json:"cpu"`
	Headers      map[string]string `json:"headers,omitempty"`
	Type         ArchiveType       `json:"type,omitempty"`
	AuthPatterns map[string]string `json:"auth_patterns,omitempty"`
}

// Pkg is a binary installed from a downloaded OS package.
type Pkg struct {
	URL          string            `json:"url"`
	File         string            `json:"file"`
	SHA256       string            `json:"sha256"`
	OS           OS                `json:"os"`
	CPU          CPU               `json:"cpu"`
	Headers      map[string]string `json:"headers,omitempty"`
	AuthPatterns map[string]string `json:"auth_patterns,omitempty"`
}

// Kind implements Binary.
func (File) Kind() Kind { return KindFile }

// Kind implements Binary.
func (Archive) Kind() Kind { return KindArchive }

// Kind implements Binary.
func (Pkg) Kind() Kind { return KindPkg }

// SourceURL implements Binary.
func (f File) SourceURL() string { return f.URL }

// SourceURL implements Binary.
func (a Archive) SourceURL() string { return a.URL }

// SourceURL implements Binary.
func (p Pkg) SourceURL() string { return p.URL }

// SortKey implements Binary.
func (f File) SortKey() string { return sortKey(f.OS, f.CPU) }

// SortKey implements Binary.
func (a Archive) SortKey() string { return sortKey(a.OS, a.CPU) }

// SortKey implements Binary.
func (p Pkg) SortKey() string { return sortKey(p.OS, p.CPU) }

// RequestHeaders implements Binary.
func (f File) RequestHeaders() map[string]string { return f.Headers }

// RequestHeaders implements Binary.
func (a Archive) RequestHeaders() map[string]string { return a.Headers }

// RequestHeaders implements Binary.
func (p Pkg) RequestHeaders() map[string]string { return p.Headers }

func sortKey(o OS, c CPU) string {
	return string(o) + "_" + string(c)
}

func (f File) validate() error {
	return validateCommon(f.URL, f.SHA256, f.OS, f.CPU)
}

func (a Archive) validate() error {
	if err := validateCommon(a.URL, a.SHA256, a.OS, a.CPU); err != nil {
		return err
	}
	if a.File == "" {
		return zerr.With(ErrInvalidBinary, "missing_field", "file")
	}
	if !a.Type.Valid() {
		return zerr.With(ErrUnknownArchiveType, "type", string(a.Type))
	}
	return nil
}

func (p Pkg) validate() error {
	if err := validateCommon(p.URL, p.SHA256, p.OS, p.CPU); err != nil {
		return err
	}
	if p.File == "" {
		return zerr.With(ErrInvalidBinary, "missing_field", "file")
	}
	return nil
}

func validateCommon(url, sha256 string, o OS, c CPU) error {
	if url == "" {
		return zerr.With(ErrInvalidBinary, "missing_field", "url")
	}
	if sha256 == "" {
		return zerr.With(ErrInvalidBinary, "missing_field", "sha256")
	}
	if !o.Valid() {
		return zerr.With(ErrUnknownOS, "os", string(o))
	}
	if !c.Valid() {
		return zerr.With(ErrUnknownCPU, "cpu", string(c))
	}
	return nil
}

// MarshalJSON emits the variant with its "kind" discriminator first.
func (f File) MarshalJSON() ([]byte, error) {
	type alias File
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{KindFile, alias(f)})
}

// MarshalJSON emits the variant with its "kind" discriminator first.
func (a Archive) MarshalJSON() ([]byte, error) {
	type alias Archive
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{KindArchive, alias(a)})
}

// MarshalJSON emits the variant with its "kind" discriminator first.
func (p Pkg) MarshalJSON() ([]byte, error) {
	type alias Pkg
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		alias
	}{KindPkg, alias(p)})
}

// DecodeBinary unmarshals one binary entry, dispatching on its "kind" tag
// and validating the result.
func DecodeBinary(data []byte) (Binary, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, zerr.Wrap(err, ErrLockfileParseFailed.Error())
	}

	var (
		bin Binary
		err error
	)
	switch probe.Kind {
	case KindFile:
		var f File
		err = json.Unmarshal(data, &f)
		bin = f
	case KindArchive:
		var a Archive
		err = json.Unmarshal(data, &a)
		bin = a
	case KindPkg:
		var p Pkg
		err = json.Unmarshal(data, &p)
		bin = p
	default:
		return nil, zerr.With(ErrUnknownBinaryKind, "kind", string(probe.Kind))
	}
	if err != nil {
		return nil, zerr.Wrap(err, ErrLockfileParseFailed.Error())
	}
	if err := bin.validate(); err != nil {
		return nil, err
	}
	return bin, nil
}

// ToolDefinition is the ordered list of binaries pinned for one tool.
type ToolDefinition struct {
	Binaries []Binary `json:"binaries"`
}

// UnmarshalJSON decodes the binaries list through DecodeBinary so that the
// kind tag selects the concrete variant.
func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Binaries []json.RawMessage `json:"binaries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, ErrLockfileParseFailed.Error())
	}

	binaries := make([]Binary, 0, len(raw.Binaries))
	for _, entry := range raw.Binaries {
		bin, err := DecodeBinary(entry)
		if err != nil {
			return err
		}
		binaries = append(binaries, bin)
	}
	t.Binaries = binaries
	return nil
}

// MarshalJSON emits the binaries sorted by "<os>_<cpu>" so serialization is
// deterministic regardless of the order entries were decoded or updated in.
func (t ToolDefinition) MarshalJSON() ([]byte, error) {
	sorted := slices.Clone(t.Binaries)
	slices.SortStableFunc(sorted, func(a, b Binary) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return json.Marshal(struct {
		Binaries []Binary `json:"binaries"`
	}{sorted})
}

// Lockfile pins exact binary artifacts (URL + sha256) per tool.
// Tools serialize in lexicographic order; "$schema" always comes first.
type Lockfile struct {
	Schema string
	Tools  map[string]ToolDefinition
}

// UnmarshalJSON treats "$schema" as the schema identifier (defaulting it
// when absent) and every other top-level key as a tool name.
func (l *Lockfile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, ErrLockfileParseFailed.Error())
	}

	l.Schema = SchemaURL
	l.Tools = make(map[string]ToolDefinition, len(raw))

	for key, value := range raw {
		if key == "$schema" {
			if err := json.Unmarshal(value, &l.Schema); err != nil {
				return zerr.Wrap(err, ErrLockfileParseFailed.Error())
			}
			continue
		}

		var def ToolDefinition
		if err := json.Unmarshal(value, &def); err != nil {
			return zerr.With(err, "tool", key)
		}
		l.Tools[key] = def
	}
	return nil
}

// MarshalJSON flattens the tools next to "$schema". encoding/json sorts
// the map keys, which yields the canonical ordering ("$" sorts before any
// tool name).
func (l Lockfile) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(l.Tools)+1)
	doc["$schema"] = l.Schema
	for name, def := range l.Tools {
		doc[name] = def
	}
	return json.Marshal(doc)
}
