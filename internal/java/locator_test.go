package java

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeRunner returns canned -version output per executable path.
type fakeRunner struct {
	outputs map[string]string
	fail    map[string]bool
	calls   []string
}

func (f *fakeRunner) Stderr(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	if len(args) != 1 || args[0] != "-version" {
		return nil, errors.New("unexpected arguments: " + strings.Join(args, " "))
	}
	if f.fail[name] {
		return []byte("Error: broken install"), errors.New("exit status 1")
	}
	return []byte(f.outputs[name]), nil
}

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

// touch creates an empty executable stand-in at dir/name.
func touch(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

var linux = Platform{OS: "linux", Arch: "amd64"}

func TestLocatorCandidates(t *testing.T) {
	home := filepath.Join("opt", "jdk-21")
	dirA := filepath.Join("usr", "local", "bin")
	dirB := filepath.Join("usr", "bin")

	l := NewLocator(
		WithPlatform(linux),
		WithGetenv(envMap(map[string]string{
			"JAVA_HOME": home,
			"PATH":      strings.Join([]string{dirA, "", dirB}, string(os.PathListSeparator)),
		})),
	)

	got := l.Candidates()
	want := []string{
		filepath.Join(home, "bin", "java"),
		filepath.Join(dirA, "java"),
		filepath.Join(dirB, "java"),
	}

	if len(got) != len(want) {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLocatorCandidatesWindowsName(t *testing.T) {
	l := NewLocator(
		WithPlatform(Platform{OS: "windows", Arch: "amd64"}),
		WithGetenv(envMap(map[string]string{"JAVA_HOME": "jdk"})),
	)

	got := l.Candidates()
	if len(got) != 1 || filepath.Base(got[0]) != "javaw.exe" {
		t.Errorf("Candidates() = %v, want a single javaw.exe", got)
	}
}

func TestLocatorLocate(t *testing.T) {
	root := t.TempDir()
	javaHome := filepath.Join(root, "jdk")
	homeJava := touch(t, filepath.Join(javaHome, "bin"), "java")
	old := touch(t, filepath.Join(root, "jdk17"), "java")
	modern := touch(t, filepath.Join(root, "jdk21"), "java")
	unquoted := touch(t, filepath.Join(root, "custom"), "java")
	broken := touch(t, filepath.Join(root, "broken"), "java")
	missingDir := filepath.Join(root, "missing")

	runner := &fakeRunner{
		outputs: map[string]string{
			homeJava: `openjdk version "21.0.3" 2024-04-16`,
			old:      `openjdk version "17.0.9" 2023-10-17`,
			modern:   "openjdk version \"21.0.1\" 2023-10-17\nOpenJDK Runtime Environment Zulu21.30+15-CA",
			unquoted: "openjdk version 21.0.2 2024-01-16",
		},
		fail: map[string]bool{broken: true},
	}

	path := func(dirs ...string) string {
		return strings.Join(dirs, string(os.PathListSeparator))
	}

	tests := []struct {
		name      string
		env       map[string]string
		want      string
		wantVer   string
		wantCalls int
	}{
		{
			name:      "JAVA_HOME wins",
			env:       map[string]string{"JAVA_HOME": javaHome, "PATH": path(filepath.Dir(modern))},
			want:      homeJava,
			wantVer:   "21.0.3",
			wantCalls: 1,
		},
		{
			name:      "wrong version skipped",
			env:       map[string]string{"PATH": path(filepath.Dir(old), filepath.Dir(modern))},
			want:      modern,
			wantVer:   "21.0.1",
			wantCalls: 2,
		},
		{
			name:      "missing directory skipped without probing",
			env:       map[string]string{"PATH": path(missingDir, filepath.Dir(modern))},
			want:      modern,
			wantVer:   "21.0.1",
			wantCalls: 1,
		},
		{
			name:      "failing probe skipped",
			env:       map[string]string{"PATH": path(filepath.Dir(broken), filepath.Dir(unquoted))},
			want:      unquoted,
			wantVer:   "21.0.2",
			wantCalls: 2,
		},
		{
			name:      "JAVA_HOME without a binary falls through to PATH",
			env:       map[string]string{"JAVA_HOME": filepath.Join(root, "no-jdk"), "PATH": path(filepath.Dir(old), filepath.Dir(modern))},
			want:      modern,
			wantVer:   "21.0.1",
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner.calls = nil
			l := NewLocator(WithPlatform(linux), WithGetenv(envMap(tt.env)), WithRunner(runner))

			rt, err := l.Locate(context.Background())
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			if rt.Path != tt.want {
				t.Errorf("Locate() path = %s, want %s", rt.Path, tt.want)
			}
			if rt.Version != tt.wantVer {
				t.Errorf("Locate() version = %s, want %s", rt.Version, tt.wantVer)
			}
			if len(runner.calls) != tt.wantCalls {
				t.Errorf("probed %d candidates (%v), want %d", len(runner.calls), runner.calls, tt.wantCalls)
			}
		})
	}
}

func TestLocatorLocateNotFound(t *testing.T) {
	root := t.TempDir()
	old := touch(t, filepath.Join(root, "jdk17"), "java")

	runner := &fakeRunner{outputs: map[string]string{old: `openjdk version "17.0.9"`}}

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"empty environment", map[string]string{}},
		{"only old java", map[string]string{"PATH": filepath.Dir(old)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocator(WithPlatform(linux), WithGetenv(envMap(tt.env)), WithRunner(runner))
			_, err := l.Locate(context.Background())
			if !errors.Is(err, ErrRuntimeNotFound) {
				t.Errorf("Locate() error = %v, want ErrRuntimeNotFound", err)
			}
		})
	}
}

func TestLocatorLocateCanceled(t *testing.T) {
	root := t.TempDir()
	modern := touch(t, filepath.Join(root, "jdk21"), "java")
	runner := &fakeRunner{outputs: map[string]string{modern: `openjdk version "21.0.1"`}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLocator(WithPlatform(linux), WithGetenv(envMap(map[string]string{"PATH": filepath.Dir(modern)})), WithRunner(runner))
	if _, err := l.Locate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Locate() error = %v, want context.Canceled", err)
	}
}

// writeScript writes an executable shell script standing in for java.
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "java")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLocatorLocateRealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-ins need a unix shell")
	}

	root := t.TempDir()
	writeScript(t, filepath.Join(root, "old"), `echo 'openjdk version "17.0.9" 2023-10-17' >&2`)
	want := writeScript(t, filepath.Join(root, "new"), `echo 'openjdk version "21.0.1" 2023-10-17' >&2`)

	path := filepath.Join(root, "old") + string(os.PathListSeparator) + filepath.Join(root, "new")
	t.Setenv("JAVA_HOME", "")
	t.Setenv("PATH", path)

	rt, err := NewLocator().Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if rt.Path != want {
		t.Errorf("Locate() = %s, want %s", rt.Path, want)
	}
	if rt.Version != "21.0.1" {
		t.Errorf("Version = %s, want 21.0.1", rt.Version)
	}
}

func TestLocatorFailingProcessSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-ins need a unix shell")
	}

	root := t.TempDir()
	writeScript(t, filepath.Join(root, "bad"), `echo 'openjdk version "21.0.1"' >&2; exit 1`)
	want := writeScript(t, filepath.Join(root, "good"), `echo 'openjdk version "21.0.4"' >&2`)

	l := NewLocator(WithGetenv(envMap(map[string]string{
		"PATH": filepath.Join(root, "bad") + string(os.PathListSeparator) + filepath.Join(root, "good"),
	})))

	rt, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if rt.Path != want {
		t.Errorf("Locate() = %s, want %s", rt.Path, want)
	}
}
