package aurora

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// assertFileContent fails unless dir/name holds exactly want.
func assertFileContent(t *testing.T, dir, name string, want []byte) {
	t.Helper()

	got, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("%s=%q, want %q", name, got, want)
	}
}

// openFixture parses data from memory.
func openFixture(t *testing.T, data []byte) *Reader {
	t.Helper()

	r, err := NewReaderFromReaderAt(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReaderFromReaderAt: %v", err)
	}

	return r
}

func TestExtractRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "module.mod", twoEntryModV1())
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var done []string
	extDir := t.TempDir()
	err = Extract(context.Background(), r, extDir, ExtractOptions{
		MaxWorkers: 2,
		OnEntryDone: func(entry Entry, written int64, _ string) {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, entry.FileName())
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range r.Resources() {
		want, err := r.ReadResource(e.Index)
		if err != nil {
			t.Fatalf("ReadResource(%d): %v", e.Index, err)
		}
		assertFileContent(t, extDir, e.FileName(), want)
	}

	sort.Strings(done)
	if len(done) != 2 || done[0] != "a.utc" || done[1] != "b.utc" {
		t.Fatalf("OnEntryDone calls=%v, want [a.utc b.utc]", done)
	}
}

func TestExtract_DefaultModeRewritesExistingFiles(t *testing.T) {
	t.Parallel()

	r := openFixture(t, twoEntryModV1())
	extDir := t.TempDir()
	if err := Extract(context.Background(), r, extDir, ExtractOptions{MaxWorkers: 2}); err != nil {
		t.Fatalf("first extract: %v", err)
	}

	targetPath := filepath.Join(extDir, "a.utc")
	if err := os.WriteFile(targetPath, []byte("stale-and-longer"), 0o600); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	if err := Extract(context.Background(), r, extDir, ExtractOptions{MaxWorkers: 2}); err != nil {
		t.Fatalf("second extract: %v", err)
	}
	assertFileContent(t, extDir, "a.utc", []byte{0x01, 0x02, 0x03})

	err := Extract(context.Background(), r, extDir, ExtractOptions{FileMode: ExtractFileModeCreateOnly})
	if err == nil {
		t.Fatal("expected create-only error for existing output file")
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestExtract_OverwriteSmart_TruncatesOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	r := openFixture(t, twoEntryModV1())
	extDir := t.TempDir()
	targetPath := filepath.Join(extDir, "a.utc")

	// Existing larger file must be truncated to extracted size.
	if err := os.WriteFile(targetPath, []byte("hello-with-tail"), 0o600); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	opts := ExtractOptions{FileMode: ExtractFileModeOverwriteSmart}
	if err := Extract(context.Background(), r, extDir, opts); err != nil {
		t.Fatalf("extract overwrite_smart: %v", err)
	}
	assertFileContent(t, extDir, "a.utc", []byte{0x01, 0x02, 0x03})

	if err := os.WriteFile(targetPath, []byte("XYZ"), 0o600); err != nil {
		t.Fatalf("write same-size stale file: %v", err)
	}
	if err := Extract(context.Background(), r, extDir, opts); err != nil {
		t.Fatalf("extract overwrite_smart second run: %v", err)
	}
	assertFileContent(t, extDir, "a.utc", []byte{0x01, 0x02, 0x03})

	if err := Extract(context.Background(), r, extDir, ExtractOptions{FileMode: ExtractFileModeTruncate}); err != nil {
		t.Fatalf("extract truncate: %v", err)
	}
	assertFileContent(t, extDir, "b.utc", []byte{0x04, 0x05})

	if err := Extract(context.Background(), r, extDir, ExtractOptions{FileMode: "bogus"}); err == nil {
		t.Fatal("expected error for unknown file mode")
	}
}

func TestExtract_RejectsUnsafeRawNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		entryName string
	}{
		{name: "dot-dot slash", entryName: "../evil.txt"},
		{name: "dot-dot backslash", entryName: `..\evil.txt`},
		{name: "absolute slash", entryName: "/absolute.txt"},
		{name: "windows drive", entryName: "C:evil.txt"},
		{name: "dot", entryName: ".."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := openFixture(t, buildERFV2("ERF ", []fixtureEntry{{name: tc.entryName, data: []byte("hello")}}))
			err := Extract(context.Background(), r, t.TempDir(), ExtractOptions{RawNames: true})
			if !errors.Is(err, ErrInvalidExtractPath) {
				t.Fatalf("expected ErrInvalidExtractPath, got %v", err)
			}
		})
	}
}

func TestExtract_SanitizesUnsafeNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		entryName string
		wantName  string
	}{
		{name: "dot-dot slash", entryName: "../evil.txt", wantName: ".._evil.txt"},
		{name: "dot-dot backslash", entryName: `..\evil.txt`, wantName: ".._evil.txt"},
		{name: "windows drive", entryName: `C:\absolute.txt`, wantName: "C__absolute.txt"},
		{name: "reserved device", entryName: "con.txt", wantName: "_con.txt"},
		{name: "control char", entryName: "a\x1bb.txt", wantName: "a_b.txt"},
		{name: "dot", entryName: "..", wantName: "_"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := openFixture(t, buildERFV2("ERF ", []fixtureEntry{{name: tc.entryName, data: []byte("hello")}}))
			extDir := t.TempDir()
			if err := Extract(context.Background(), r, extDir, ExtractOptions{}); err != nil {
				t.Fatalf("Extract sanitize: %v", err)
			}
			assertFileContent(t, extDir, tc.wantName, []byte("hello"))
		})
	}
}

func TestExtract_CaseCollisions(t *testing.T) {
	t.Parallel()

	r := openFixture(t, buildERFV2("ERF ", []fixtureEntry{
		{name: "Readme.txt", data: []byte("first")},
		{name: "readme.txt", data: []byte("second")},
	}))

	extDir := t.TempDir()
	if err := Extract(context.Background(), r, extDir, ExtractOptions{}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	assertFileContent(t, extDir, "Readme.txt", []byte("first"))
	assertFileContent(t, extDir, "readme~2.txt", []byte("second"))
}

func TestExtract_Rules(t *testing.T) {
	t.Parallel()

	r := openFixture(t, buildERFV1("HAK ", nil, []fixtureEntry{
		{name: "spells", typ: FileType2DA, data: []byte("2DA V2.0")},
		{name: "feat", typ: FileType2DA, data: []byte("2DA V2.0 feat")},
		{name: "dialog", typ: FileTypeTLK, data: []byte("TLK")},
	}))

	extDir := t.TempDir()
	rules := append(IncludeRules("*.2DA"), ExcludeRules("feat.*")...)
	if err := Extract(context.Background(), r, extDir, ExtractOptions{Rules: rules}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	assertFileContent(t, extDir, "spells.2da", []byte("2DA V2.0"))
	for _, name := range []string{"feat.2da", "dialog.tlk"} {
		if _, err := os.Stat(filepath.Join(extDir, name)); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("%s must be filtered out, stat err=%v", name, err)
		}
	}
}

func TestExtract_SelectedEntries(t *testing.T) {
	t.Parallel()

	r := openFixture(t, twoEntryModV1())
	extDir := t.TempDir()
	selected := r.Resources()[1:]
	if err := Extract(context.Background(), r, extDir, ExtractOptions{Entries: selected}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	assertFileContent(t, extDir, "b.utc", []byte{0x04, 0x05})
	if _, err := os.Stat(filepath.Join(extDir, "a.utc")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("a.utc must not be extracted, stat err=%v", err)
	}
}

func TestExtract_ReadFailure(t *testing.T) {
	t.Parallel()

	data := twoEntryModV1()
	resOffset := binary.LittleEndian.Uint32(data[28:])
	binary.LittleEndian.PutUint32(data[resOffset+4:], 1000)

	r := openFixture(t, data)
	err := Extract(context.Background(), r, t.TempDir(), ExtractOptions{MaxWorkers: 1})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err=%v, want ErrTruncated", err)
	}
}

func TestExtract_Canceled(t *testing.T) {
	t.Parallel()

	r := openFixture(t, twoEntryModV1())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Extract(ctx, r, t.TempDir(), ExtractOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestExtract_LogsToContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	r := openFixture(t, twoEntryModV1())
	if err := Extract(ctx, r, t.TempDir(), ExtractOptions{MaxWorkers: 1}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for _, want := range []string{`"message":"extract started"`, `"file":"a.utc"`, `"file":"b.utc"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("log output missing %s:\n%s", want, buf.String())
		}
	}
}

func TestExtract_NilArchive(t *testing.T) {
	t.Parallel()

	if err := Extract(context.Background(), nil, t.TempDir(), ExtractOptions{}); !errors.Is(err, ErrNilReader) {
		t.Fatalf("err=%v, want ErrNilReader", err)
	}
}
