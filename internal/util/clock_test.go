// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// FAKE CLOCK TESTS
// =============================================================================

func TestFakeClock_AdvanceFiresDueTimers(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	fired := 0
	fc.AfterFunc(100*time.Millisecond, func() { fired++ })
	fc.AfterFunc(300*time.Millisecond, func() { fired++ })

	fc.Advance(150 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected 1 timer fired after 150ms, got %d", fired)
	}

	fc.Advance(200 * time.Millisecond)
	if fired != 2 {
		t.Fatalf("expected 2 timers fired after 350ms, got %d", fired)
	}
}

func TestFakeClock_FiresInDeadlineOrder(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	var order []string
	fc.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	fc.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	fc.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })

	fc.Advance(time.Second)

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if i >= len(order) || order[i] != w {
			t.Fatalf("fire order = %v, want %v", order, want)
		}
	}
}

func TestFakeClock_StopPreventsFiring(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	fired := false
	tm := fc.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Fatal("Stop should report the timer was pending")
	}
	fc.Advance(time.Second)

	if fired {
		t.Fatal("stopped timer must not fire")
	}
	if tm.Stop() {
		t.Fatal("second Stop should report not pending")
	}
}

func TestFakeClock_ResetExtendsDeadline(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	fired := 0
	tm := fc.AfterFunc(100*time.Millisecond, func() { fired++ })

	fc.Advance(50 * time.Millisecond)
	tm.Reset(100 * time.Millisecond)

	fc.Advance(60 * time.Millisecond)
	if fired != 0 {
		t.Fatal("timer fired before the reset deadline")
	}

	fc.Advance(50 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected exactly one fire after reset deadline, got %d", fired)
	}
}

func TestFakeClock_CallbackCanSchedule(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	// A chain like a poll loop: each fire schedules the next.
	fires := 0
	var schedule func()
	schedule = func() {
		fires++
		if fires < 3 {
			fc.AfterFunc(100*time.Millisecond, schedule)
		}
	}
	fc.AfterFunc(100*time.Millisecond, schedule)

	fc.Advance(time.Second)
	if fires != 3 {
		t.Fatalf("expected 3 chained fires, got %d", fires)
	}
}

func TestFakeClock_NowTracksCallbackDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	fc := NewFakeClock(start)

	var seen time.Time
	fc.AfterFunc(100*time.Millisecond, func() { seen = fc.Now() })

	fc.Advance(500 * time.Millisecond)

	if want := start.Add(100 * time.Millisecond); !seen.Equal(want) {
		t.Fatalf("Now() inside callback = %v, want %v", seen, want)
	}
	if want := start.Add(500 * time.Millisecond); !fc.Now().Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", fc.Now(), want)
	}
}

func TestFakeClock_Pending(t *testing.T) {
	fc := NewFakeClock(time.Unix(0, 0))

	t1 := fc.AfterFunc(time.Second, func() {})
	fc.AfterFunc(2*time.Second, func() {})

	if got := fc.Pending(); got != 2 {
		t.Fatalf("Pending = %d, want 2", got)
	}
	t1.Stop()
	if got := fc.Pending(); got != 1 {
		t.Fatalf("Pending after Stop = %d, want 1", got)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")
	data := []byte("hello, world!")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("content = %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_Overwrite(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new" {
		t.Errorf("content = %q, want %q", content, "new")
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "dir", "test.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestAtomicWriteFile_NoTempLeftover(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
